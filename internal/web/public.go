package web

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/domain"
)

// Home page
func (s *Server) home(c *gin.Context) {
	snap := s.view.Snapshot()
	s.render(c, http.StatusOK, "index.html", gin.H{
		"title":    snap.About.Title,
		"about":    snap.About,
		"projects": snap.Projects,
		"skills":   snap.Skills,
	})
}

// HTMX contact form endpoint - answers with a success or error fragment.
// Both are 200 so HTMX swaps them in.
func (s *Server) contact(c *gin.Context) {
	var in domain.ContactInput
	if err := c.ShouldBind(&in); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			verr = &domain.ValidationError{Fields: map[string]string{"form": "could not be read"}}
		}
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error":  "Please fix the highlighted fields.",
			"fields": verr.Fields,
		})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	msg, err := s.app.Messages.Add(ctx, in)
	if err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	if s.app.Mailer.Configured() {
		// the message is already stored; a mail failure is only logged
		if err := s.app.Mailer.Send(msg); err != nil {
			log.Printf("Warning: contact message %s stored but not mailed: %v", msg.ID, err)
		}
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func (s *Server) toggleTheme(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := s.app.Theme.Toggle(ctx); err != nil {
		log.Printf("Error toggling theme: %v", err)
	}

	c.Redirect(http.StatusSeeOther, localReferer(c, "/"))
}

// events streams a "change" event, carrying the store key, after data shown
// on the public page has been refreshed.
func (s *Server) events(c *gin.Context) {
	changes, unsubscribe := s.view.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	// open the stream now so the browser does not wait for the first change
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case change, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("change", change.Key)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// localReferer returns the path of the referring page, or fallback. Only the
// path is kept so the redirect stays on this site.
func localReferer(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return fallback
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
