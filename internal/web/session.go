package web

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName  = "folio"
	adminKey     = "admin"
	flashSuccess = "success"
	flashError   = "error"
)

type Flash struct {
	Kind string
	Text string
}

func (s *Server) session(c *gin.Context) *sessions.Session {
	session, err := s.sessions.Get(c.Request, sessionName)
	if err != nil {
		// a cookie signed with an old secret; Get still returns a fresh session
		log.Printf("Warning: discarding unreadable session: %v", err)
	}
	return session
}

func (s *Server) saveSession(c *gin.Context, session *sessions.Session) {
	if err := session.Save(c.Request, c.Writer); err != nil {
		log.Printf("Error saving session: %v", err)
	}
}

// addFlash queues a notification for the next rendered page.
func (s *Server) addFlash(c *gin.Context, kind, text string) {
	session := s.session(c)
	session.AddFlash(text, kind)
	s.saveSession(c, session)
}

// flashes takes the queued notifications out of the session.
func (s *Server) flashes(c *gin.Context) []Flash {
	session := s.session(c)

	var out []Flash
	for _, kind := range []string{flashSuccess, flashError} {
		for _, f := range session.Flashes(kind) {
			if text, ok := f.(string); ok {
				out = append(out, Flash{Kind: kind, Text: text})
			}
		}
	}
	if len(out) > 0 {
		s.saveSession(c, session)
	}
	return out
}

func (s *Server) markAdmin(c *gin.Context, admin bool) {
	session := s.session(c)
	if admin {
		session.Values[adminKey] = true
	} else {
		delete(session.Values, adminKey)
	}
	s.saveSession(c, session)
}

func (s *Server) isAdminSession(c *gin.Context) bool {
	admin, _ := s.session(c).Values[adminKey].(bool)
	return admin
}
