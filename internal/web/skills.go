package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/repository"
)

func (s *Server) listSkills(c *gin.Context) {
	s.renderSkills(c, http.StatusOK, domain.SkillInput{Color: domain.Palette[0]}, nil)
}

func (s *Server) createSkill(c *gin.Context) {
	var in domain.SkillInput
	if err := c.ShouldBind(&in); err != nil {
		s.renderSkills(c, http.StatusBadRequest, in, fieldsOf(err))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	skill, err := s.app.Skills.Add(ctx, in)
	if err != nil {
		log.Printf("Error adding skill: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to add skill")
		return
	}
	s.addFlash(c, flashSuccess, fmt.Sprintf("Skill %q added.", skill.Name))
	c.Redirect(http.StatusSeeOther, "/admin/skills")
}

func (s *Server) editSkill(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	skill, err := s.app.Skills.Get(ctx, c.Param("id"))
	if err != nil {
		s.skillError(c, err)
		return
	}
	s.renderSkillForm(c, http.StatusOK, skill, domain.SkillInput{Name: skill.Name, Color: skill.Color}, nil)
}

func (s *Server) updateSkill(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	skill, err := s.app.Skills.Get(ctx, c.Param("id"))
	if err != nil {
		s.skillError(c, err)
		return
	}

	var in domain.SkillInput
	if err := c.ShouldBind(&in); err != nil {
		s.renderSkillForm(c, http.StatusBadRequest, skill, in, fieldsOf(err))
		return
	}

	updated, err := s.app.Skills.Update(ctx, skill.ID, in)
	if err != nil {
		s.skillError(c, err)
		return
	}
	s.addFlash(c, flashSuccess, fmt.Sprintf("Skill %q updated.", updated.Name))
	c.Redirect(http.StatusSeeOther, "/admin/skills")
}

func (s *Server) deleteSkill(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	skill, err := s.app.Skills.Get(ctx, c.Param("id"))
	if err != nil {
		s.skillError(c, err)
		return
	}
	if err := s.app.Skills.Delete(ctx, skill.ID); err != nil {
		s.skillError(c, err)
		return
	}
	s.addFlash(c, flashSuccess, fmt.Sprintf("Skill %q deleted.", skill.Name))
	c.Redirect(http.StatusSeeOther, "/admin/skills")
}

func (s *Server) renderSkills(c *gin.Context, status int, in domain.SkillInput, fields map[string]string) {
	ctx, cancel := requestContext(c)
	defer cancel()

	skills, err := s.app.Skills.List(ctx)
	if err != nil {
		log.Printf("Error loading skills: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to load skills")
		return
	}
	s.render(c, status, "admin-skills.html", gin.H{
		"title":  "Skills",
		"skills": skills,
		"input":  in,
		"fields": fields,
	})
}

func (s *Server) renderSkillForm(c *gin.Context, status int, skill domain.Skill, in domain.SkillInput, fields map[string]string) {
	s.render(c, status, "admin-skill-form.html", gin.H{
		"title":  "Edit skill",
		"skill":  skill,
		"input":  in,
		"fields": fields,
	})
}

func (s *Server) skillError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		s.renderError(c, http.StatusNotFound, "Skill not found")
		return
	}
	log.Printf("Error saving skill: %v", err)
	s.renderError(c, http.StatusInternalServerError, "Failed to save skill")
}

// fieldsOf returns the per-field problems of a binding error.
func fieldsOf(err error) map[string]string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return map[string]string{"form": "could not be read"}
}
