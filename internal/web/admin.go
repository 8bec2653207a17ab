package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/auth"
	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/repository"
)

const recentMessages = 5

// DashboardStats are the counters on the admin landing page.
type DashboardStats struct {
	TotalProjects  int
	TotalSkills    int
	TotalMessages  int
	UnreadMessages int
	RecentMessages []domain.Message
}

// Middleware to check admin authentication. The stored flag must be set and
// this browser must be the one that logged in.
func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if !s.app.Auth.IsAuthenticated(ctx) || !s.isAdminSession(c) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) loginPage(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if s.app.Auth.IsAuthenticated(ctx) && s.isAdminSession(c) {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	s.render(c, http.StatusOK, "admin-login.html", gin.H{
		"title": "Admin Login",
	})
}

func (s *Server) login(c *gin.Context) {
	var creds auth.Credentials
	err := c.ShouldBind(&creds)
	if err == nil {
		ctx, cancel := requestContext(c)
		defer cancel()
		err = s.app.Auth.Login(ctx, creds)
	}

	var verr *domain.ValidationError
	switch {
	case err == nil:
		s.markAdmin(c, true)
		log.Printf("Admin login successful from %s", s.hashIP(c))
		s.addFlash(c, flashSuccess, "Welcome back!")
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	case errors.As(err, &verr):
		s.render(c, http.StatusBadRequest, "admin-login.html", gin.H{
			"title":    "Admin Login",
			"fields":   verr.Fields,
			"username": creds.Username,
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		log.Printf("Failed admin login attempt from %s", s.hashIP(c))
		s.render(c, http.StatusUnauthorized, "admin-login.html", gin.H{
			"title":    "Admin Login",
			"error":    "Invalid credentials",
			"username": creds.Username,
		})
	default:
		log.Printf("Error during admin login: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Login failed")
	}
}

func (s *Server) logout(c *gin.Context) {
	if !s.confirmed(c, "Log out of the admin panel?", localReferer(c, "/admin/dashboard")) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := s.app.Auth.Logout(ctx); err != nil {
		log.Printf("Error during admin logout: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Logout failed")
		return
	}

	s.markAdmin(c, false)
	log.Printf("Admin logout from %s", s.hashIP(c))
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

func (s *Server) dashboard(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := s.dashboardStats(ctx)
	if err != nil {
		log.Printf("Error loading admin stats: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	s.render(c, http.StatusOK, "admin-dashboard.html", gin.H{
		"title": "Dashboard",
		"stats": stats,
	})
}

func (s *Server) dashboardStats(ctx context.Context) (*DashboardStats, error) {
	projects, err := s.app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := s.app.Skills.List(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.app.Messages.List(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProjects:  len(projects),
		TotalSkills:    len(skills),
		TotalMessages:  len(messages),
		UnreadMessages: repository.Unread(messages),
		RecentMessages: newestFirst(messages, recentMessages),
	}, nil
}

// Hash the client IP for log lines
func (s *Server) hashIP(c *gin.Context) string {
	return auth.HashIP(c.ClientIP(), s.salt)
}

// newestFirst returns up to n messages, most recent first.
func newestFirst(messages []domain.Message, n int) []domain.Message {
	out := slices.Clone(messages)
	slices.SortStableFunc(out, func(a, b domain.Message) int {
		return b.Date.Compare(a.Date)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
