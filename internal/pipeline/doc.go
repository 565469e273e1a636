// Package pipeline implements the Markdown-to-HTML rendering pipeline.
//
// Rendering runs in three stages:
//   - Markdown preprocessing (line ending normalization, blank-line compression)
//   - Markdown to HTML conversion via Goldmark, with GFM, footnotes and emoji
//   - Document assembly: wrapping a fragment in a standalone page with CSS
//
// Sanitization happens inside the conversion stage. Goldmark runs without
// html.WithUnsafe, so raw HTML is dropped and dangerous link destinations
// are blanked before the highlighting extension sees any code block.
//
// PDF printing is handled separately by the root toolbox package using
// headless Chrome (go-rod).
package pipeline
