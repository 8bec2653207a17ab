package web

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/query"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"markdown": renderMarkdown,
		"date": func(t time.Time) string {
			return t.Local().Format("Jan 2, 2006 15:04")
		},
		"statusClass": func(status string) string {
			if status == domain.StatusActive {
				return "bg-green-100 text-green-800"
			}
			return "bg-red-100 text-red-800"
		},
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"palette":  func() []string { return domain.Palette },
		"statuses": func() []string { return domain.Statuses },
		"pageURL":  pageURL,
		"fieldError": func(fields map[string]string, name string) string {
			return fields[name]
		},
		"isDataURL": func(s string) bool {
			return strings.HasPrefix(s, "data:")
		},
		"imageURL": imageURL,
		"sortURL":  sortURL,
		"columns": func() []string {
			return []string{query.SortTitle, query.SortCategory, query.SortStatus, query.SortDate}
		},
	}
}

// sortURL links a column header: a new column sorts ascending, the active
// column flips direction.
func sortURL(values url.Values, column, active string, desc bool) string {
	dir := "asc"
	if column == active && !desc {
		dir = "desc"
	}
	q := url.Values{}
	for k, v := range values {
		q[k] = append([]string(nil), v...)
	}
	q.Set("sort", column)
	q.Set("dir", dir)
	q.Del("page")
	return "?" + q.Encode()
}

// imageURL lets uploaded data:image URLs through html/template, which would
// otherwise replace them. Anything else is left for the template to filter.
func imageURL(src string) template.URL {
	if strings.HasPrefix(src, "data:image/") {
		return template.URL(src)
	}
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return template.URL(src)
}

// renderMarkdown turns about-me text into HTML. Raw HTML in the source is
// dropped by goldmark's default renderer.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		log.Printf("Warning: markdown render failed: %v", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// pageURL returns the current query string with key set to value, for
// pagination and sort links that keep the active filters.
func pageURL(query url.Values, key string, value any) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(key, fmt.Sprint(value))
	if key != "page" {
		q.Del("page")
	}
	return "?" + q.Encode()
}
