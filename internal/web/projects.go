package web

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/query"
	"github.com/Zachkp/folio/internal/repository"
)

const maxImageSize = 2 << 20

func (s *Server) listProjects(c *gin.Context) {
	var q query.Query
	var problems map[string]string
	if err := c.ShouldBindQuery(&q); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			problems = verr.Fields
		} else {
			problems = map[string]string{"query": "could not be read"}
		}
		q = query.Query{Search: q.Search}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	projects, err := s.app.Projects.List(ctx)
	if err != nil {
		log.Printf("Error loading projects: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to load projects")
		return
	}

	page, err := query.Run(projects, q)
	if errors.Is(err, query.ErrBadWhere) {
		problems = map[string]string{"where": err.Error()}
		q.Where = ""
		page, err = query.Run(projects, q)
	}
	if err != nil {
		log.Printf("Error querying projects: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to load projects")
		return
	}

	sortKey, desc := q.Key()
	s.render(c, http.StatusOK, "admin-projects.html", gin.H{
		"title":      "Projects",
		"page":       page,
		"query":      q,
		"values":     c.Request.URL.Query(),
		"problems":   problems,
		"categories": query.Categories(projects),
		"sortKey":    sortKey,
		"desc":       desc,
	})
}

func (s *Server) showProject(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := s.app.Projects.Get(ctx, c.Param("id"))
	if err != nil {
		s.projectError(c, err)
		return
	}
	s.render(c, http.StatusOK, "admin-project.html", gin.H{
		"title":   p.Title,
		"project": p,
	})
}

func (s *Server) newProject(c *gin.Context) {
	s.renderProjectForm(c, http.StatusOK, domain.ProjectInput{
		Status: domain.StatusActive,
		Date:   time.Now().Format(time.DateOnly),
	}, nil, nil)
}

func (s *Server) createProject(c *gin.Context) {
	in, verr, err := bindProject(c)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "The form could not be read")
		return
	}
	if verr != nil {
		s.renderProjectForm(c, http.StatusBadRequest, in, nil, verr.Fields)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := s.app.Projects.Add(ctx, in)
	if errors.As(err, &verr) {
		s.renderProjectForm(c, http.StatusBadRequest, in, nil, verr.Fields)
		return
	}
	if err != nil {
		log.Printf("Error adding project: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Failed to add project")
		return
	}

	s.addFlash(c, flashSuccess, fmt.Sprintf("Project %q added.", p.Title))
	c.Redirect(http.StatusSeeOther, "/admin/projects")
}

func (s *Server) editProject(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := s.app.Projects.Get(ctx, c.Param("id"))
	if err != nil {
		s.projectError(c, err)
		return
	}
	s.renderProjectForm(c, http.StatusOK, domain.InputFrom(p), &p, nil)
}

func (s *Server) updateProject(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	current, err := s.app.Projects.Get(ctx, c.Param("id"))
	if err != nil {
		s.projectError(c, err)
		return
	}

	in, verr, err := bindProject(c)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "The form could not be read")
		return
	}
	if verr != nil {
		s.renderProjectForm(c, http.StatusBadRequest, in, &current, verr.Fields)
		return
	}

	p, err := s.app.Projects.Update(ctx, current.ID, in)
	if errors.As(err, &verr) {
		s.renderProjectForm(c, http.StatusBadRequest, in, &current, verr.Fields)
		return
	}
	if err != nil {
		s.projectError(c, err)
		return
	}

	s.addFlash(c, flashSuccess, fmt.Sprintf("Project %q updated.", p.Title))
	c.Redirect(http.StatusSeeOther, "/admin/projects")
}

func (s *Server) deleteProject(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := s.app.Projects.Get(ctx, c.Param("id"))
	if err != nil {
		s.projectError(c, err)
		return
	}
	if !s.confirmed(c, fmt.Sprintf("Delete project %q?", p.Title), "/admin/projects") {
		return
	}

	if err := s.app.Projects.Delete(ctx, p.ID); err != nil {
		s.projectError(c, err)
		return
	}
	log.Printf("Project %s deleted by admin from %s", p.ID, s.hashIP(c))
	s.addFlash(c, flashSuccess, fmt.Sprintf("Project %q deleted.", p.Title))
	c.Redirect(http.StatusSeeOther, "/admin/projects")
}

func (s *Server) exportProjects(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	// Set headers for file download
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", "attachment; filename=projects.json")
	c.Status(http.StatusOK)

	if err := s.app.Projects.Export(ctx, c.Writer); err != nil {
		log.Printf("Error exporting projects: %v", err)
		return
	}
	log.Printf("Projects exported by %s", s.hashIP(c))
}

func (s *Server) importProjects(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		s.addFlash(c, flashError, "Choose a JSON file to import.")
		c.Redirect(http.StatusSeeOther, "/admin/projects")
		return
	}
	f, err := header.Open()
	if err != nil {
		s.addFlash(c, flashError, "The uploaded file could not be read.")
		c.Redirect(http.StatusSeeOther, "/admin/projects")
		return
	}
	defer f.Close()

	ctx, cancel := requestContext(c)
	defer cancel()

	n, err := s.app.Projects.Import(ctx, f)
	switch {
	case err == nil:
		log.Printf("Imported %d projects from %s", n, s.hashIP(c))
		s.addFlash(c, flashSuccess, fmt.Sprintf("Imported %d projects.", n))
	case errors.Is(err, repository.ErrImportNotList):
		s.addFlash(c, flashError, "Import failed: the file must contain a JSON array of projects.")
	case errors.Is(err, repository.ErrImportUnreadable):
		s.addFlash(c, flashError, "Import failed: the file is not valid project JSON.")
	default:
		log.Printf("Error importing projects: %v", err)
		s.addFlash(c, flashError, "Import failed.")
	}
	c.Redirect(http.StatusSeeOther, "/admin/projects")
}

func (s *Server) renderProjectForm(c *gin.Context, status int, in domain.ProjectInput, current *domain.Project, fields map[string]string) {
	title, action := "New project", "/admin/projects/new"
	if current != nil {
		title, action = "Edit project", "/admin/projects/"+current.ID+"/edit"
	}
	s.render(c, status, "admin-project-form.html", gin.H{
		"title":   title,
		"action":  action,
		"input":   in,
		"project": current,
		"fields":  fields,
	})
}

func (s *Server) projectError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		s.renderError(c, http.StatusNotFound, "Project not found")
		return
	}
	log.Printf("Error loading project: %v", err)
	s.renderError(c, http.StatusInternalServerError, "Failed to load project")
}

// bindProject reads the project form. An uploaded image becomes a data URL;
// without one, image_url is used, and an empty value keeps the stored image.
func bindProject(c *gin.Context) (domain.ProjectInput, *domain.ValidationError, error) {
	var in domain.ProjectInput
	err := c.ShouldBind(&in)

	var verr *domain.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return in, nil, err
	}

	image, imgErr := readImage(c, "image")
	switch {
	case imgErr != nil:
		if verr == nil {
			verr = &domain.ValidationError{Fields: map[string]string{}}
		}
		verr.Fields["image"] = imgErr.Error()
	case image != "":
		in.Image = image
	default:
		in.Image = strings.TrimSpace(c.PostForm("image_url"))
	}
	return in, verr, nil
}

// readImage returns the uploaded file in field as a data URL, or "" when
// nothing was uploaded.
func readImage(c *gin.Context, field string) (string, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", errors.New("could not be read")
	}
	if header.Size > maxImageSize {
		return "", errors.New("must be at most 2 MB")
	}

	f, err := header.Open()
	if err != nil {
		return "", errors.New("could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return "", errors.New("could not be read")
	}
	if len(data) > maxImageSize {
		return "", errors.New("must be at most 2 MB")
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", errors.New("must be an image")
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
