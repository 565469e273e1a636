package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/alnah/go-toolbox/internal/assets"
)

// ErrTemplateParse is returned when a page template does not parse.
var ErrTemplateParse = errors.New("failed to parse page template")

// Page identifiers, also used to highlight the active navigation link.
const (
	pageHome     = "home"
	pageMarkdown = "markdown"
	pagePDFMerge = "pdf-merge"
)

// toolLink is one entry of the navigation header and the home cards.
type toolLink struct {
	ID          string
	Name        string
	Description string
	Href        string
}

var tools = []toolLink{
	{
		ID:          pageMarkdown,
		Name:        "Markdown Renderer",
		Description: "Write, preview, and export markdown content easily",
		Href:        "/tools/markdown",
	},
	{
		ID:          pagePDFMerge,
		Name:        "PDF Merger",
		Description: "Combine multiple PDF files into a single document",
		Href:        "/tools/pdf-merge",
	},
}

// layoutData is the root value every page executes with.
type layoutData struct {
	Base   string
	Title  string
	Active string
	Tools  []toolLink
	Page   any
}

// pages holds one parsed template per page, each combining the layout
// with the page's "content" block.
type pages struct {
	byName map[string]*template.Template
}

func parsePages(set *assets.TemplateSet) (*pages, error) {
	layout, err := template.New("layout").Parse(set.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: layout: %v", ErrTemplateParse, err)
	}

	sources := map[string]string{
		pageHome:     set.Home,
		pageMarkdown: set.Markdown,
		pagePDFMerge: set.PDFMerge,
	}

	p := &pages{byName: make(map[string]*template.Template, len(sources))}
	for name, src := range sources {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
		}
		if _, err := t.Parse(src); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
		}
		p.byName[name] = t
	}
	return p, nil
}

// render executes a page into a buffer first so a template error still
// produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, page any) {
	t, ok := s.pages.byName[name]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown page %q", name))
		return
	}

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout", layoutData{
		Base:   s.basePath,
		Title:  title,
		Active: name,
		Tools:  tools,
		Page:   page,
	})
	if err != nil {
		s.serverError(w, r, fmt.Errorf("rendering %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageHome, "", nil)
}
