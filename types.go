package toolbox

import (
	"fmt"
	"html/template"
	"strings"
)

// Download file names and content types.
const (
	MergedFilename     = "merged-document.pdf"
	HTMLExportFilename = "markdown-export.html"
	PDFExportFilename  = "markdown-export.pdf"

	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Notice texts shown by the PDF merge tool.
const (
	MsgSkippedFiles  = "Some files were skipped because they're not PDF files."
	MsgNoFiles       = "Please add at least one PDF file."
	MsgOneFile       = "Please add at least two PDF files to merge."
	MsgMergeFailed   = "An error occurred while merging the PDF files. Please try again."
	MsgMergeInFlight = "A merge is already running. Please wait for it to finish."
)

// MarkdownBuffer is the text being edited in the Markdown tool.
// It is replaced wholesale on every edit; there is no history.
type MarkdownBuffer struct {
	text string
}

// NewMarkdownBuffer returns a buffer holding text.
func NewMarkdownBuffer(text string) MarkdownBuffer {
	return MarkdownBuffer{text: text}
}

// Edit returns a buffer holding text in place of the current content.
func (b MarkdownBuffer) Edit(text string) MarkdownBuffer {
	return MarkdownBuffer{text: text}
}

// String returns the buffer content.
func (b MarkdownBuffer) String() string {
	return b.text
}

// IsEmpty reports whether the buffer holds only whitespace.
func (b MarkdownBuffer) IsEmpty() bool {
	return strings.TrimSpace(b.text) == ""
}

// Rendered is an HTML fragment produced from a MarkdownBuffer.
// It has been through the sanitizing renderer and is safe to embed.
type Rendered string

// HTML returns the fragment as template.HTML for embedding in pages.
func (r Rendered) HTML() template.HTML {
	return template.HTML(r) // #nosec G203 -- produced by the safe goldmark renderer
}

// IsEmpty reports whether the fragment has no content.
func (r Rendered) IsEmpty() bool {
	return strings.TrimSpace(string(r)) == ""
}

// FileRecord is one PDF accepted into the merge list.
// Records are never mutated after creation.
type FileRecord struct {
	Name string
	Size int64
	Data []byte
}

// Candidate is a file offered to the merge tool, before validation.
// ContentType is the type declared by the sender, not sniffed.
type Candidate struct {
	Name        string
	ContentType string
	Data        []byte
}

// Download is a named blob handed to the user.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NoticeKind classifies the message shown above the merge list.
type NoticeKind int

// Notice kinds.
const (
	NoticeNone NoticeKind = iota
	NoticeWarning
	NoticeError
)

// String returns the lowercase kind name, used as a CSS class.
func (k NoticeKind) String() string {
	switch k {
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "none"
	}
}

// Notice is the single message slot of the merge tool.
type Notice struct {
	Kind NoticeKind
	Text string
}

// IsZero reports whether no message is set.
func (n Notice) IsZero() bool {
	return n.Kind == NoticeNone && n.Text == ""
}

func warning(text string) Notice { return Notice{Kind: NoticeWarning, Text: text} }

func failure(text string) Notice { return Notice{Kind: NoticeError, Text: text} }

// MergeState is the whole view state of the merge tool.
// Transitions return a new state; a state value is never modified in place.
type MergeState struct {
	Files      FileList
	Processing bool
	Notice     Notice
}

// Direction is the way a file moves in the merge list.
type Direction int

// Move directions.
const (
	Up Direction = iota
	Down
)

// String returns "up" or "down".
func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// ParseDirection converts "up" or "down" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return Up, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// FormatSize renders a byte count as "N bytes", "N.N KB" or "N.N MB".
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
