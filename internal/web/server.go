// Package web serves the public site and the admin panel.
package web

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gorilla/sessions"

	"github.com/Zachkp/folio/internal/app"
	"github.com/Zachkp/folio/internal/site"
)

//go:embed templates/*.html
var templatesFS embed.FS

const requestTimeout = 5 * time.Second

type Server struct {
	app      *app.App
	view     *site.View
	sessions *sessions.CookieStore
	salt     string
	engine   *gin.Engine
}

// New builds the router. An empty sessionSecret gets a random one, so
// sessions do not survive a restart.
func New(a *app.App, view *site.View, sessionSecret string) *Server {
	binding.Validator = structValidator{}

	if sessionSecret == "" {
		sessionSecret = generateToken()
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using a random session secret. Set FOLIO_SESSIONSECRET to keep logins across restarts.")
		}
	}
	cookies := sessions.NewCookieStore([]byte(sessionSecret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		app:      a,
		view:     view,
		sessions: cookies,
		salt:     generateToken(),
	}
	s.engine = s.routes()

	if gin.Mode() == gin.DebugMode {
		if a.Auth.UsesDefaultUsername() {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
		if a.Auth.UsesDefaultPassword() {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	log.Printf("Admin access available at: /admin/login")
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(funcMap()).ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", s.home)
	r.POST("/contact", s.contact)
	r.POST("/theme", s.toggleTheme)
	r.GET("/events", s.events)

	r.GET("/admin/login", s.loginPage)
	r.POST("/admin/login", s.login)

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.POST("/logout", s.logout)
	admin.GET("", s.dashboard)
	admin.GET("/dashboard", s.dashboard)

	admin.GET("/projects", s.listProjects)
	admin.GET("/projects/new", s.newProject)
	admin.POST("/projects/new", s.createProject)
	admin.GET("/projects/export", s.exportProjects)
	admin.POST("/projects/import", s.importProjects)
	admin.GET("/projects/:id", s.showProject)
	admin.GET("/projects/:id/edit", s.editProject)
	admin.POST("/projects/:id/edit", s.updateProject)
	admin.POST("/projects/:id/delete", s.deleteProject)

	admin.GET("/skills", s.listSkills)
	admin.POST("/skills", s.createSkill)
	admin.GET("/skills/:id/edit", s.editSkill)
	admin.POST("/skills/:id/edit", s.updateSkill)
	admin.POST("/skills/:id/delete", s.deleteSkill)

	admin.GET("/about", s.aboutPage)
	admin.POST("/about", s.aboutAction)

	admin.GET("/messages", s.listMessages)
	admin.POST("/messages/:id/read", s.toggleMessageRead)
	admin.POST("/messages/:id/delete", s.deleteMessage)

	return r
}

// requestContext bounds store calls made while serving c.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// render adds what every page needs (flashes, theme, current path) to data.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = s.flashes(c)
	data["path"] = c.Request.URL.Path

	ctx, cancel := requestContext(c)
	defer cancel()
	theme, err := s.app.Theme.Get(ctx)
	if err != nil {
		log.Printf("Error loading theme: %v", err)
	}
	data["theme"] = theme

	c.HTML(status, name, data)
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	s.render(c, status, "admin-error.html", gin.H{
		"title": "Error",
		"error": message,
	})
}

func generateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate token:", err)
	}
	return hex.EncodeToString(bytes)
}
