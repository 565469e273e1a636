package assets

import (
	"errors"
	"fmt"
	"io/fs"
)

// TemplateSet holds the page templates of the web UI.
// Layout defines the "layout" template, which executes a "content" template
// that each page file defines.
type TemplateSet struct {
	Name     string // Identifier (name or directory path)
	Layout   string
	Home     string
	Markdown string
	PDFMerge string
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// Built-in style names.
const (
	// PreviewStyleName styles rendered Markdown, in the preview and in exports.
	PreviewStyleName = "preview"
	// AppStyleName styles the navigation shell and tool pages.
	AppStyleName = "app"
)

// Page file names inside a template set directory.
const (
	layoutFile   = "layout.html"
	homeFile     = "home.html"
	markdownFile = "markdown.html"
	pdfMergeFile = "pdf-merge.html"
)

// readTemplateSet loads every page of a set through read, which receives the
// page file name. Missing files are detected with fs.ErrNotExist.
func readTemplateSet(name string, read func(file string) ([]byte, error)) (*TemplateSet, error) {
	files := []string{layoutFile, homeFile, markdownFile, pdfMergeFile}
	contents := make(map[string]string, len(files))
	var missing []string

	for _, file := range files {
		data, err := read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, file)
				continue
			}
			return nil, fmt.Errorf("%w: reading %s: %w", ErrAssetRead, file, err)
		}
		contents[file] = string(data)
	}

	if len(missing) == len(files) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q missing %v", ErrIncompleteTemplateSet, name, missing)
	}

	return &TemplateSet{
		Name:     name,
		Layout:   contents[layoutFile],
		Home:     contents[homeFile],
		Markdown: contents[markdownFile],
		PDFMerge: contents[pdfMergeFile],
	}, nil
}
