package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/domain"
)

func (s *Server) aboutPage(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	about, err := s.app.About.Load(ctx)
	if err != nil {
		log.Printf("Error loading about data: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to load the about section")
		return
	}
	s.renderAbout(c, http.StatusOK, about, nil)
}

// aboutAction handles every button of the about editor. The add and remove
// buttons only change the draft on screen; save stores it.
func (s *Server) aboutAction(c *gin.Context) {
	draft, fields := readAbout(c)
	action, arg, _ := strings.Cut(c.PostForm("action"), ":")

	var err error
	switch action {
	case "add_experience":
		draft.AppendExperience(domain.Entry{})
	case "add_education":
		draft.AppendEducation(domain.Entry{})
	case "add_statistic":
		draft.AppendStatistic(domain.Statistic{})
	case "remove_experience":
		err = withIndex(arg, draft.RemoveExperience)
	case "remove_education":
		err = withIndex(arg, draft.RemoveEducation)
	case "remove_statistic":
		err = withIndex(arg, draft.RemoveStatistic)
	case "save":
		s.saveAbout(c, draft, fields)
		return
	default:
		err = fmt.Errorf("unknown action %q", action)
	}

	if err != nil {
		s.renderAbout(c, http.StatusBadRequest, draft, map[string]string{"form": err.Error()})
		return
	}
	s.renderAbout(c, http.StatusOK, draft, fields)
}

func (s *Server) saveAbout(c *gin.Context, draft domain.AboutData, fields map[string]string) {
	if len(fields) > 0 {
		s.renderAbout(c, http.StatusBadRequest, draft, fields)
		return
	}
	if err := draft.Validate(); err != nil {
		s.renderAbout(c, http.StatusBadRequest, draft, fieldsOf(err))
		return
	}

	// the prompt page re-posts the image as a value, not as an upload
	if c.Request.PostForm != nil {
		c.Request.PostForm.Set("image", draft.Image)
		c.Request.PostForm.Del("remove_image")
	}
	if !s.confirmed(c, "Save the about section? This replaces the current content.", "/admin/about") {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	err := s.app.About.Save(ctx, draft)
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.renderAbout(c, http.StatusBadRequest, draft, verr.Fields)
		return
	}
	if err != nil {
		log.Printf("Error saving about data: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to save the about section")
		return
	}

	s.addFlash(c, flashSuccess, "About section saved.")
	c.Redirect(http.StatusSeeOther, "/admin/about")
}

func (s *Server) renderAbout(c *gin.Context, status int, about domain.AboutData, fields map[string]string) {
	about.Normalize()
	s.render(c, status, "admin-about.html", gin.H{
		"title":  "About",
		"about":  about,
		"fields": fields,
	})
}

// readAbout builds the draft from the editor form. Lists arrive as parallel
// arrays, one value per row.
func readAbout(c *gin.Context) (domain.AboutData, map[string]string) {
	fields := map[string]string{}
	about := domain.DefaultAbout()
	about.Title = strings.TrimSpace(c.PostForm("title"))
	about.Description = c.PostForm("description")
	about.Image = strings.TrimSpace(c.PostForm("image"))

	image, err := readImage(c, "image_file")
	if err != nil {
		fields["image"] = err.Error()
	} else if image != "" {
		about.Image = image
	}
	if c.PostForm("remove_image") == "on" {
		about.Image = ""
	}

	for _, e := range readEntries(c, "experience") {
		about.AppendExperience(e)
	}
	for _, e := range readEntries(c, "education") {
		about.AppendEducation(e)
	}

	names := c.PostFormArray("statistic_name")
	percentages := c.PostFormArray("statistic_percentage")
	for i, name := range names {
		raw := strings.TrimSpace(at(percentages, i))
		pct := 0
		if raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				fields[fmt.Sprintf("statistics[%d].percentage", i)] = "must be a whole number"
			}
			pct = n
		}
		about.AppendStatistic(domain.Statistic{Name: strings.TrimSpace(name), Percentage: pct})
	}

	return about, fields
}

func readEntries(c *gin.Context, prefix string) []domain.Entry {
	titles := c.PostFormArray(prefix + "_title")
	periods := c.PostFormArray(prefix + "_period")
	descriptions := c.PostFormArray(prefix + "_description")

	entries := make([]domain.Entry, 0, len(titles))
	for i, title := range titles {
		entries = append(entries, domain.Entry{
			Title:       strings.TrimSpace(title),
			Period:      strings.TrimSpace(at(periods, i)),
			Description: at(descriptions, i),
		})
	}
	return entries
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func withIndex(arg string, fn func(int) error) error {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return domain.ErrIndexOutOfRange
	}
	return fn(i)
}
