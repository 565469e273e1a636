// Package pdfdoc wraps pdfcpu behind the three operations the merge tool
// needs: open-and-check, count, and page concatenation. Nothing outside this
// package imports pdfcpu.
package pdfdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Sentinel errors for PDF operations.
var (
	ErrEmptyDocument = errors.New("empty PDF data")
	ErrInvalidPDF    = errors.New("invalid PDF document")
	ErrNoDocuments   = errors.New("no documents to merge")
	ErrMerge         = errors.New("PDF merge failed")
)

func init() {
	// pdfcpu otherwise writes a config.yml under the user config dir on first use.
	api.DisableConfigDir()
}

// PageSize is the width and height of one page in PDF points.
type PageSize struct {
	Width  float64
	Height float64
}

// Engine performs PDF operations with pdfcpu.
// Safe for concurrent use: every call builds its own pdfcpu configuration,
// since pdfcpu records the running command on the configuration it is given.
type Engine struct {
	relaxed bool
}

// NewEngine returns an Engine using pdfcpu's relaxed validation, which
// accepts the minor PDF standard deviations common in real-world files.
func NewEngine() *Engine {
	return &Engine{relaxed: true}
}

// NewStrictEngine returns an Engine that rejects any deviation from the PDF standard.
func NewStrictEngine() *Engine {
	return &Engine{}
}

func (e *Engine) conf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if e.relaxed {
		conf.ValidationMode = model.ValidationRelaxed
	} else {
		conf.ValidationMode = model.ValidationStrict
	}
	return conf
}

// open parses and validates data, returning the pdfcpu context.
func (e *Engine) open(data []byte) (ctx *model.Context, err error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	// pdfcpu can panic on badly broken cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	ctx, err = api.ReadContext(bytes.NewReader(data), e.conf())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return ctx, nil
}

// Validate reports whether data parses as a PDF document.
func (e *Engine) Validate(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := e.open(data)
	return err
}

// PageCount returns the number of pages in data.
func (e *Engine) PageCount(data []byte) (int, error) {
	pdf, err := e.open(data)
	if err != nil {
		return 0, err
	}
	return pdf.PageCount, nil
}

// PageSizes returns the effective size of every page, in page order.
func (e *Engine) PageSizes(data []byte) ([]PageSize, error) {
	pdf, err := e.open(data)
	if err != nil {
		return nil, err
	}
	dims, err := pdf.PageDims()
	if err != nil {
		return nil, fmt.Errorf("%w: reading page sizes: %v", ErrInvalidPDF, err)
	}
	sizes := make([]PageSize, len(dims))
	for i, d := range dims {
		sizes[i] = PageSize{Width: d.Width, Height: d.Height}
	}
	return sizes, nil
}

// Merge concatenates the pages of docs in order into a new document and
// returns its serialized bytes. Each document's internal page order is kept.
// Every input is parsed before any output is produced; the first failure
// aborts the whole merge and no partial output is returned.
func (e *Engine) Merge(ctx context.Context, docs [][]byte) (out []byte, err error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := e.open(doc); err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", ErrMerge, i+1, err)
		}
		readers[i] = bytes.NewReader(doc)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrMerge, r)
		}
	}()

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, e.conf()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return buf.Bytes(), nil
}
