package toolbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/alnah/go-toolbox/internal/assets"
	"github.com/alnah/go-toolbox/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
)

// DefaultMarkdown seeds a new editor with a tour of the supported syntax.
const DefaultMarkdown = "# Markdown Renderer\n" +
	"\n" +
	"## Example Content\n" +
	"\n" +
	"This is a simple markdown editor with live preview. You can:\n" +
	"\n" +
	"- Write markdown in the editor\n" +
	"- See the rendered output in the preview tab\n" +
	"- Export as HTML or copy the content\n" +
	"- Use all standard markdown features\n" +
	"\n" +
	"### Code Example\n" +
	"\n" +
	"```javascript\n" +
	"function hello() {\n" +
	"  console.log(\"Hello, world!\");\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"### Table Example\n" +
	"\n" +
	"| Header 1 | Header 2 |\n" +
	"|----------|----------|\n" +
	"| Cell 1   | Cell 2   |\n" +
	"| Cell 3   | Cell 4   |\n" +
	"\n" +
	"### GitHub Flavored Markdown\n" +
	"\n" +
	"This supports **GitHub Flavored Markdown** features like:\n" +
	"\n" +
	"- [x] Task lists\n" +
	"- [x] Tables\n" +
	"- [x] Strikethrough (~~like this~~)\n" +
	"- [x] Automatic links\n" +
	"- [x] Emoji shortcodes :rocket:\n"

// clipboardWriter puts text on a clipboard.
type clipboardWriter func(text string) error

// MarkdownTool renders, copies and exports a MarkdownBuffer.
// Safe for concurrent use once built.
type MarkdownTool struct {
	logger        *slog.Logger
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	exporter      PDFExporter
	clipboard     clipboardWriter
	stylesheet    string
	title         string
}

// MarkdownOption configures a MarkdownTool.
type MarkdownOption func(*markdownConfig)

type markdownConfig struct {
	logger         *slog.Logger
	highlightStyle string
	assetPath      string
	exporter       PDFExporter
	title          string
	htmlConverter  pipeline.HTMLConverter
	clipboard      clipboardWriter
}

// WithLogger sets the logger for best-effort failures. Defaults to discard.
func WithLogger(l *slog.Logger) MarkdownOption {
	return func(c *markdownConfig) { c.logger = l }
}

// WithHighlightStyle selects the chroma style for code blocks.
func WithHighlightStyle(name string) MarkdownOption {
	return func(c *markdownConfig) { c.highlightStyle = name }
}

// WithAssetPath overrides built-in stylesheets with files from dir/styles.
func WithAssetPath(dir string) MarkdownOption {
	return func(c *markdownConfig) { c.assetPath = dir }
}

// WithPDFExporter enables ExportPDF. The tool does not close the exporter.
func WithPDFExporter(e PDFExporter) MarkdownOption {
	return func(c *markdownConfig) { c.exporter = e }
}

// WithDocumentTitle sets the <title> of standalone exports.
func WithDocumentTitle(title string) MarkdownOption {
	return func(c *markdownConfig) { c.title = title }
}

// WithClipboard replaces the system clipboard used by Copy.
func WithClipboard(write func(text string) error) MarkdownOption {
	return func(c *markdownConfig) { c.clipboard = write }
}

// NewMarkdownTool builds the render pipeline and loads export stylesheets.
func NewMarkdownTool(opts ...MarkdownOption) (*MarkdownTool, error) {
	cfg := markdownConfig{
		highlightStyle: pipeline.DefaultHighlightStyle,
		title:          pipeline.DefaultDocumentTitle,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	conv := cfg.htmlConverter
	if conv == nil {
		gc, err := pipeline.NewGoldmarkConverter(cfg.highlightStyle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStyleNotFound, err)
		}
		conv = gc
	}

	stylesheet, err := exportStylesheet(cfg.assetPath, cfg.highlightStyle)
	if err != nil {
		return nil, err
	}

	cb := cfg.clipboard
	if cb == nil {
		cb = clipboard.WriteAll
	}

	return &MarkdownTool{
		logger:        logger,
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: conv,
		cssInjector:   &pipeline.CSSInjection{},
		exporter:      cfg.exporter,
		clipboard:     cb,
		stylesheet:    stylesheet,
		title:         cfg.title,
	}, nil
}

// exportStylesheet combines the preview style with the highlight theme.
func exportStylesheet(assetPath, highlightStyle string) (string, error) {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	preview, err := resolver.LoadStyle(assets.PreviewStyleName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleNotFound, err)
	}
	highlight, err := pipeline.HighlightCSS(highlightStyle)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleNotFound, err)
	}
	return preview + "\n" + highlight, nil
}

// Stylesheet returns the CSS embedded in standalone exports: the preview
// style followed by the syntax highlighting theme.
func (t *MarkdownTool) Stylesheet() string {
	return t.stylesheet
}

// PDFEnabled reports whether ExportPDF has an exporter to work with.
func (t *MarkdownTool) PDFEnabled() bool {
	return t.exporter != nil
}

// Render converts the buffer to a sanitized, highlighted HTML fragment.
// An empty buffer renders to an empty fragment.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (t *MarkdownTool) Render(ctx context.Context, buf MarkdownBuffer) (out Rendered, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrHTMLConversion, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	md := t.preprocessor.PreprocessMarkdown(ctx, buf.String())
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	html, err := t.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return Rendered(html), nil
}

// Copy writes the buffer's markdown source to the system clipboard.
// Best effort: a failure is logged at debug level and reported as false,
// never as an error.
func (t *MarkdownTool) Copy(buf MarkdownBuffer) bool {
	if err := t.clipboard(buf.String()); err != nil {
		t.logger.Debug("clipboard write failed", "error", err)
		return false
	}
	return true
}

// ExportHTML packages a rendered fragment as markdown-export.html.
// The default is the fragment exactly as previewed; standalone wraps it in
// a complete document carrying the preview and highlight stylesheets.
// An empty fragment yields ErrNothingToExport.
func (t *MarkdownTool) ExportHTML(r Rendered, standalone bool) (Download, error) {
	if r.IsEmpty() {
		return Download{}, ErrNothingToExport
	}

	content := string(r)
	if standalone {
		content = t.document(context.Background(), r)
	}

	return Download{
		Filename:    HTMLExportFilename,
		ContentType: ContentTypeHTML,
		Data:        []byte(content),
	}, nil
}

// ExportPDF prints the standalone document of r to markdown-export.pdf.
// Returns ErrExportDisabled when no PDFExporter was configured.
func (t *MarkdownTool) ExportPDF(ctx context.Context, r Rendered) (Download, error) {
	if t.exporter == nil {
		return Download{}, ErrExportDisabled
	}
	if r.IsEmpty() {
		return Download{}, ErrNothingToExport
	}

	pdf, err := t.exporter.ToPDF(ctx, t.document(ctx, r))
	if err != nil {
		return Download{}, fmt.Errorf("exporting PDF: %w", err)
	}

	return Download{
		Filename:    PDFExportFilename,
		ContentType: ContentTypePDF,
		Data:        pdf,
	}, nil
}

// document builds the standalone page for r.
func (t *MarkdownTool) document(ctx context.Context, r Rendered) string {
	doc := pipeline.WrapDocument(t.title, strings.TrimSpace(string(r)))
	return t.cssInjector.InjectCSS(ctx, doc, t.stylesheet)
}
