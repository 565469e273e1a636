package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

// Sentinel errors for HTML conversion.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownStyle   = errors.New("unknown highlight style")
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark (pure Go).
type GoldmarkConverter struct {
	md    goldmark.Markdown
	style string
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// emoji shortcodes and class-based syntax highlighting in the given chroma
// style. An empty style selects DefaultHighlightStyle.
func NewGoldmarkConverter(style string) (*GoldmarkConverter, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	if _, ok := styles.Registry[strings.ToLower(style)]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			emoji.Emoji,        // :rocket: shortcodes
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // Colors come from HighlightCSS
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&urlSanitizer{}, 100),
			),
		),
		// No html.WithUnsafe(): raw HTML is omitted. URLs are checked by
		// urlSanitizer, which also covers autolinks and encoded schemes.
	)
	return &GoldmarkConverter{md: md, style: style}, nil
}

// Style returns the chroma style name used for code blocks.
func (c *GoldmarkConverter) Style() string {
	return c.style
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: panic: %v", ErrHTMLConversion, r)}
			}
		}()

		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// HighlightCSS returns the stylesheet for chroma's token classes in the
// named style.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	return writeStyleCSS(s)
}

func writeStyleCSS(s *chroma.Style) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, s); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
