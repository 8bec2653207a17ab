package web

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

type hiddenField struct {
	Name  string
	Value string
}

// confirmed reports whether the submitted form carries confirm=yes. When it
// does not, confirmed answers the request itself: "no" goes back to back and
// a missing answer gets a page asking the question, which re-posts the form.
func (s *Server) confirmed(c *gin.Context, question, back string) bool {
	switch c.PostForm("confirm") {
	case "yes":
		return true
	case "no":
		c.Redirect(http.StatusSeeOther, back)
		return false
	}

	var fields []hiddenField
	for name, values := range c.Request.PostForm {
		if name == "confirm" {
			continue
		}
		for _, v := range values {
			fields = append(fields, hiddenField{Name: name, Value: v})
		}
	}
	sortFields(fields)

	s.render(c, http.StatusOK, "confirm.html", gin.H{
		"title":    "Please confirm",
		"question": question,
		"action":   c.Request.URL.Path,
		"fields":   fields,
		"back":     back,
	})
	return false
}

// sortFields orders by name and keeps the order of repeated names, which the
// about editor relies on for its parallel lists.
func sortFields(fields []hiddenField) {
	slices.SortStableFunc(fields, func(a, b hiddenField) int {
		return strings.Compare(a.Name, b.Name)
	})
}
