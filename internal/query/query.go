// Package query filters, sorts and pages the admin project table.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Zachkp/folio/internal/domain"
)

const PageSize = 10

const (
	SortTitle    = "title"
	SortCategory = "category"
	SortStatus   = "status"
	SortDate     = "date"
)

var ErrBadWhere = errors.New("query: invalid where expression")

// Query is the table state. It binds straight from the URL query string.
// An empty Sort means newest first.
type Query struct {
	Search   string `form:"q"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=Active Inactive"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Sort     string `form:"sort" binding:"omitempty,oneof=title category status date"`
	Dir      string `form:"dir" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"min=0"`
	Where    string `form:"where" binding:"max=500"`
}

// Page is one page of the filtered, sorted result.
type Page struct {
	Items      []domain.Project
	Total      int
	Number     int
	TotalPages int
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Key returns the effective sort column and direction.
func (q Query) Key() (string, bool) {
	if q.Sort == "" {
		return SortDate, q.Dir != "asc"
	}
	return q.Sort, q.Dir == "desc"
}

// Run applies q to projects. The input slice is not modified.
func Run(projects []domain.Project, q Query) (Page, error) {
	match, err := compileWhere(q.Where)
	if err != nil {
		return Page{}, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	var filtered []domain.Project
	for _, p := range projects {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) &&
			!strings.Contains(strings.ToLower(p.Status), search) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.From != "" && p.Date < q.From {
			continue
		}
		if q.To != "" && p.Date > q.To {
			continue
		}
		if match != nil {
			ok, err := match(p)
			if err != nil {
				return Page{}, err
			}
			if !ok {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	sortProjects(filtered, q)

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	number := min(max(q.Page, 1), totalPages)

	start := (number - 1) * PageSize
	end := min(start+PageSize, total)
	items := []domain.Project{}
	if start < end {
		items = filtered[start:end]
	}

	return Page{
		Items:      items,
		Total:      total,
		Number:     number,
		TotalPages: totalPages,
	}, nil
}

// sortProjects orders with the English collation. Ties keep list order.
func sortProjects(projects []domain.Project, q Query) {
	key, desc := q.Key()
	col := collate.New(language.English, collate.Loose)

	field := func(p domain.Project) string {
		switch key {
		case SortTitle:
			return p.Title
		case SortCategory:
			return p.Category
		case SortStatus:
			return p.Status
		default:
			return p.Date
		}
	}

	slices.SortStableFunc(projects, func(a, b domain.Project) int {
		c := col.CompareString(field(a), field(b))
		if desc {
			return -c
		}
		return c
	})
}

// Categories returns the distinct categories in collation order.
func Categories(projects []domain.Project) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range projects {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	collate.New(language.English).SortStrings(out)
	return out
}

func env(p domain.Project) map[string]any {
	return map[string]any{
		"title":       p.Title,
		"category":    p.Category,
		"status":      p.Status,
		"date":        p.Date,
		"description": p.Description,
		"link":        p.Link,
	}
}

func compileWhere(src string) (func(domain.Project) (bool, error), error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}

	program, err := expr.Compile(src, expr.Env(env(domain.Project{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWhere, err)
	}
	return func(p domain.Project) (bool, error) {
		return run(program, p)
	}, nil
}

func run(program *vm.Program, p domain.Project) (bool, error) {
	out, err := expr.Run(program, env(p))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBadWhere, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}
