// Package domain holds the records the site is made of and the typed inputs
// that create or change them.
package domain

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Statuses lists the values a project status can take, in display order.
var Statuses = []string{StatusActive, StatusInactive}

// Project is a portfolio entry.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// ProjectInput is what the admin project form submits.
type ProjectInput struct {
	Title       string `form:"title" json:"title" binding:"required,max=200"`
	Category    string `form:"category" json:"category" binding:"required,max=100"`
	Status      string `form:"status" json:"status" binding:"required,oneof=Active Inactive"`
	Date        string `form:"date" json:"date" binding:"required,datetime=2006-01-02"`
	Image       string `form:"-" json:"image"`
	Description string `form:"description" json:"description" binding:"max=5000"`
	Link        string `form:"link" json:"link" binding:"omitempty,url"`
}

func (in ProjectInput) Validate() error {
	return Validate(in)
}

// NewProject builds the record created from in.
func NewProject(id string, in ProjectInput) Project {
	p := Project{ID: id}
	in.Apply(&p)
	return p
}

// Apply copies the input over p. An empty Image keeps the current one.
func (in ProjectInput) Apply(p *Project) {
	p.Title = in.Title
	p.Category = in.Category
	p.Status = in.Status
	p.Date = in.Date
	p.Description = in.Description
	p.Link = in.Link
	if in.Image != "" {
		p.Image = in.Image
	}
}

// InputFrom returns the form values that reproduce p, for edit forms.
func InputFrom(p Project) ProjectInput {
	return ProjectInput{
		Title:       p.Title,
		Category:    p.Category,
		Status:      p.Status,
		Date:        p.Date,
		Image:       p.Image,
		Description: p.Description,
		Link:        p.Link,
	}
}

// DefaultProjects is the list a fresh store is seeded with.
func DefaultProjects() []Project {
	return []Project{
		{
			ID:          "1",
			Title:       "E-Commerce Platform",
			Category:    "Web Development",
			Status:      StatusActive,
			Date:        "2024-05-01",
			Description: "A modern, scalable e-commerce platform.",
			Link:        "https://eticaret.com",
		},
		{
			ID:          "2",
			Title:       "Blog Site",
			Category:    "Personal",
			Status:      StatusInactive,
			Date:        "2024-04-15",
			Description: "A blog for personal posts and articles.",
		},
		{
			ID:          "3",
			Title:       "CRM System",
			Category:    "Enterprise",
			Status:      StatusActive,
			Date:        "2024-03-20",
			Description: "A customer relationship management application.",
		},
	}
}
