// Package view renders the catalog's HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/validate"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageIndex    = "index"
	PageNewBook  = "new-book"
	PageEditBook = "update-book"
	PageNotFound = "not-found"
	PageError    = "error"
)

var pageNames = []string{PageIndex, PageNewBook, PageEditBook, PageNotFound, PageError}

// Page is the data every template receives.
type Page struct {
	Title     string
	CSRFToken string
	Content   any
}

// ListData backs the index page.
type ListData struct {
	Books      []catalog.Book
	Term       string
	Page       int
	TotalPages int
	TotalBooks int
}

// Pages lists 1..TotalPages for the pagination links.
func (d ListData) Pages() []int {
	out := make([]int, d.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (d ListData) HasPrev() bool { return d.Page > 1 }
func (d ListData) HasNext() bool { return d.Page < d.TotalPages }
func (d ListData) Prev() int     { return d.Page - 1 }
func (d ListData) Next() int     { return d.Page + 1 }

// FormData backs the new-book and update-book forms.
type FormData struct {
	ID     int64
	Values catalog.Candidate
	Errors validate.Errors
}

// ErrorData backs the not-found and error pages.
type ErrorData struct {
	Message   string
	RequestID string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page into memory so a template failure never leaves a
// half-written response.
func (r *Renderer) Render(page string, data Page) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("view: unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("view: render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}
