package web

import (
	"errors"
	"log"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/repository"
)

func (s *Server) listMessages(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	messages, err := s.app.Messages.List(ctx)
	if err != nil {
		log.Printf("Error loading messages: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to load messages")
		return
	}

	s.render(c, http.StatusOK, "admin-messages.html", gin.H{
		"title":    "Messages",
		"messages": newestFirst(messages, len(messages)),
		"unread":   repository.Unread(messages),
	})
}

func (s *Server) toggleMessageRead(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	read, err := s.app.Messages.ToggleRead(ctx, c.Param("id"))
	if err != nil {
		s.messageError(c, err)
		return
	}
	if read {
		s.addFlash(c, flashSuccess, "Message marked as read.")
	} else {
		s.addFlash(c, flashSuccess, "Message marked as unread.")
	}
	c.Redirect(http.StatusSeeOther, "/admin/messages")
}

func (s *Server) deleteMessage(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	messages, err := s.app.Messages.List(ctx)
	if err != nil {
		s.messageError(c, err)
		return
	}
	i := slices.IndexFunc(messages, func(m domain.Message) bool { return m.ID == c.Param("id") })
	if i < 0 {
		s.messageError(c, repository.ErrNotFound)
		return
	}
	if !s.confirmed(c, "Delete the message from "+messages[i].Name+"?", "/admin/messages") {
		return
	}

	if err := s.app.Messages.Delete(ctx, messages[i].ID); err != nil {
		s.messageError(c, err)
		return
	}
	log.Printf("Message %s deleted by admin from %s", messages[i].ID, s.hashIP(c))
	s.addFlash(c, flashSuccess, "Message deleted.")
	c.Redirect(http.StatusSeeOther, "/admin/messages")
}

func (s *Server) messageError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		s.renderError(c, http.StatusNotFound, "Message not found")
		return
	}
	log.Printf("Error saving message: %v", err)
	s.renderError(c, http.StatusInternalServerError, "Failed to update message")
}
