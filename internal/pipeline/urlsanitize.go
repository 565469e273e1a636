package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// allowedSchemes lists the URL schemes links may carry. URLs without a
// scheme (relative paths, fragments, bare emails) are always allowed.
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// inlineImageTypes lists the data: media types images may embed.
var inlineImageTypes = [][]byte{
	[]byte("data:image/png"),
	[]byte("data:image/gif"),
	[]byte("data:image/jpeg"),
	[]byte("data:image/webp"),
}

// urlSanitizer blanks link and image destinations whose scheme is not
// allowed, and turns unsafe autolinks into plain text. Destinations are
// checked after entity and escape decoding, the way a browser sees them.
type urlSanitizer struct{}

func (t *urlSanitizer) Transform(node *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	var unsafeAutoLinks []*ast.AutoLink

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch link := n.(type) {
		case *ast.Link:
			if !isSafeURL(link.Destination, false) {
				link.Destination = []byte{}
			}
		case *ast.Image:
			if !isSafeURL(link.Destination, true) {
				link.Destination = []byte{}
			}
		case *ast.AutoLink:
			if !isSafeURL(link.URL(source), false) {
				unsafeAutoLinks = append(unsafeAutoLinks, link)
			}
		}
		return ast.WalkContinue, nil
	})

	// Replaced after the walk: swapping nodes mid-walk cuts the sibling chain.
	for _, link := range unsafeAutoLinks {
		link.Parent().ReplaceChild(link.Parent(), link, ast.NewString(link.Label(source)))
	}
}

// isSafeURL reports whether dest, once decoded, has no scheme or an allowed
// one. Images may also embed raster data: URLs.
func isSafeURL(dest []byte, image bool) bool {
	u := normalizeURL(dest)

	colon := bytes.IndexByte(u, ':')
	if colon < 0 {
		return true
	}
	if bytes.ContainsAny(u[:colon], "/?#") {
		return true // the colon sits in a path, query or fragment
	}

	if allowedSchemes[string(u[:colon])] {
		return true
	}
	if image {
		for _, prefix := range inlineImageTypes {
			if bytes.HasPrefix(u, prefix) {
				return true
			}
		}
	}
	return false
}

// normalizeURL decodes escapes and character references, then drops the
// whitespace and control bytes browsers ignore inside a scheme, and
// lowercases the result.
func normalizeURL(dest []byte) []byte {
	decoded := util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(dest)))

	out := make([]byte, 0, len(decoded))
	for _, c := range decoded {
		if c <= ' ' || c == 0x7f {
			continue
		}
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return out
}
