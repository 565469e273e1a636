package pipeline

import (
	"context"
	"html"
	"strings"
)

// DefaultDocumentTitle is the <title> of standalone exports.
const DefaultDocumentTitle = "Markdown Export"

// PreviewClass is the class of the element holding a rendered fragment,
// in the web preview and in standalone exports alike.
const PreviewClass = "markdown-preview"

// documentTemplate wraps a fragment in a complete HTML5 document.
// Placeholders are replaced in order: title, then body.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{title}}</title>
</head>
<body>
<article class="` + PreviewClass + `">
{{body}}
</article>
</body>
</html>`

// WrapDocument embeds an HTML fragment in a standalone HTML5 document.
// The title is escaped; the fragment is inserted as-is.
func WrapDocument(title, fragment string) string {
	if title == "" {
		title = DefaultDocumentTitle
	}
	doc := strings.Replace(documentTemplate, "{{title}}", html.EscapeString(title), 1)
	return strings.Replace(doc, "{{body}}", fragment, 1)
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	sanitizedCSS := sanitizeCSS(cssContent)
	styleBlock := "<style>" + sanitizedCSS + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
