package web

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-toolbox"
	"github.com/alnah/go-toolbox/internal/assets"
	"github.com/alnah/go-toolbox/internal/pipeline"
	"github.com/alnah/go-toolbox/internal/session"
)

// DefaultMaxUploadBytes caps request bodies when no limit is configured.
const DefaultMaxUploadBytes = 100 << 20

// Server holds the handlers' dependencies.
type Server struct {
	basePath       string
	maxUploadBytes int64
	assetPath      string
	highlightStyle string
	logger         *slog.Logger

	markdown *toolbox.MarkdownTool
	sessions *session.Store
	pages    *pages
	styles   map[string]string
}

// Option configures a Server.
type Option func(*Server)

// WithBasePath mounts every route under prefix, e.g. "/toolbox".
func WithBasePath(prefix string) Option {
	return func(s *Server) { s.basePath = prefix }
}

// WithMaxUploadBytes caps each request body.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) { s.maxUploadBytes = n }
}

// WithAssetPath overrides the built-in templates and styles with files
// from dir/templates/default and dir/styles.
func WithAssetPath(dir string) Option {
	return func(s *Server) { s.assetPath = dir }
}

// WithHighlightStyle selects the chroma theme served as highlight.css.
func WithHighlightStyle(name string) Option {
	return func(s *Server) { s.highlightStyle = name }
}

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer loads templates and styles and returns a ready Server.
func NewServer(md *toolbox.MarkdownTool, sessions *session.Store, opts ...Option) (*Server, error) {
	s := &Server{
		maxUploadBytes: DefaultMaxUploadBytes,
		highlightStyle: pipeline.DefaultHighlightStyle,
		markdown:       md,
		sessions:       sessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	resolver, err := assets.NewAssetResolver(s.assetPath)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	set, err := resolver.LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	s.pages, err = parsePages(set)
	if err != nil {
		return nil, err
	}

	s.styles, err = loadStyles(resolver, s.highlightStyle)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the full router, with the tool routes under the base path.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health/live", s.live)
	r.Get("/health/ready", s.ready)

	if s.basePath == "" {
		s.routes(r)
		return r
	}

	r.Route(s.basePath, s.routes)
	return r
}

func (s *Server) routes(r chi.Router) {
	r.Get("/static/{name}", s.static)

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)
		r.Use(s.limitBody)

		r.Get("/", s.home)

		r.Route("/tools/markdown", func(r chi.Router) {
			r.Get("/", s.markdownPage)
			r.Post("/", s.markdownSave)
			r.Post("/preview", s.markdownPreview)
			r.Post("/export", s.markdownExport)
			r.Post("/export.pdf", s.markdownExportPDF)
		})

		r.Route("/tools/pdf-merge", func(r chi.Router) {
			r.Get("/", s.mergePage)
			r.Post("/files", s.mergeUpload)
			r.Post("/files/{index:[0-9]+}/{op}", s.mergeFileAction)
			r.Post("/clear", s.mergeClear)
			r.Post("/merge", s.mergeRun)
		})
	})
}

// url prefixes path with the base path.
func (s *Server) url(path string) string {
	return s.basePath + path
}

func (s *Server) live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) ready(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pages == nil || s.sessions == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
