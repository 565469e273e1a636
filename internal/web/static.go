package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alnah/go-toolbox/internal/assets"
	"github.com/alnah/go-toolbox/internal/pipeline"
)

// Stylesheets served under /static.
const (
	appCSS       = "app.css"
	previewCSS   = "preview.css"
	highlightCSS = "highlight.css"
)

func loadStyles(resolver *assets.AssetResolver, highlightStyle string) (map[string]string, error) {
	app, err := resolver.LoadStyle(assets.AppStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", appCSS, err)
	}
	preview, err := resolver.LoadStyle(assets.PreviewStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", previewCSS, err)
	}
	highlight, err := pipeline.HighlightCSS(highlightStyle)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", highlightCSS, err)
	}
	return map[string]string{
		appCSS:       app,
		previewCSS:   preview,
		highlightCSS: highlight,
	}, nil
}

func (s *Server) static(w http.ResponseWriter, r *http.Request) {
	css, ok := s.styles[chi.URLParam(r, "name")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(css))
}
