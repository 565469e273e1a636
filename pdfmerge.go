package toolbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-toolbox/internal/fileutil"
	"github.com/alnah/go-toolbox/internal/pdfdoc"
)

// PDFEngine parses and concatenates PDF documents.
type PDFEngine interface {
	Validate(ctx context.Context, data []byte) error
	Merge(ctx context.Context, docs [][]byte) ([]byte, error)
}

// Compile-time interface check.
var _ PDFEngine = (*pdfdoc.Engine)(nil)

// PDFMerger implements the merge tool's state transitions.
// It holds no state of its own: every method takes a MergeState and
// returns the next one. Safe for concurrent use.
type PDFMerger struct {
	engine   PDFEngine
	workers  int
	maxFiles int
	logger   *slog.Logger
}

// MergerOption configures a PDFMerger.
type MergerOption func(*PDFMerger)

// WithEngine replaces the pdfcpu-backed engine.
func WithEngine(e PDFEngine) MergerOption {
	return func(m *PDFMerger) { m.engine = e }
}

// WithValidationWorkers bounds how many files of a batch are parsed at once.
// Zero or less means GOMAXPROCS.
func WithValidationWorkers(n int) MergerOption {
	return func(m *PDFMerger) { m.workers = n }
}

// WithMaxFiles caps the list length. Accepted files past the cap are
// dropped with the skipped-files warning. Zero means no cap.
func WithMaxFiles(n int) MergerOption {
	return func(m *PDFMerger) { m.maxFiles = n }
}

// WithMergerLogger sets the logger for rejected files and merge failures.
func WithMergerLogger(l *slog.Logger) MergerOption {
	return func(m *PDFMerger) { m.logger = l }
}

// NewPDFMerger creates a PDFMerger backed by pdfcpu unless overridden.
func NewPDFMerger(opts ...MergerOption) *PDFMerger {
	m := &PDFMerger{}
	for _, opt := range opts {
		opt(m)
	}
	if m.engine == nil {
		m.engine = pdfdoc.NewEngine()
	}
	if m.workers <= 0 {
		m.workers = runtime.GOMAXPROCS(0)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

// AddBatch validates candidates and appends the accepted ones, in batch
// order, after the existing files. A candidate is accepted when it declares
// application/pdf and the engine parses it. Any rejection sets a single
// warning; otherwise the notice is cleared. If ctx ends before every file
// is checked, nothing is appended and the warning is set.
func (m *PDFMerger) AddBatch(ctx context.Context, state MergeState, candidates []Candidate) MergeState {
	records, err := m.validate(ctx, candidates)
	if err != nil {
		next := state
		next.Notice = warning(MsgSkippedFiles)
		return next
	}
	return m.appendAccepted(state, records, len(candidates))
}

// validate returns the accepted candidates as records, in batch order.
func (m *PDFMerger) validate(ctx context.Context, candidates []Candidate) ([]FileRecord, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	accepted := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, c := range candidates {
		if fileutil.MediaType(c.ContentType) != ContentTypePDF {
			m.logger.Debug("skipping file", "name", c.Name, "reason", "declared type", "contentType", c.ContentType)
			continue
		}
		g.Go(func() error {
			if err := m.engine.Validate(gctx, c.Data); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				m.logger.Debug("skipping file", "name", c.Name, "reason", "parse", "error", err)
				return nil
			}
			accepted[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		m.logger.Debug("batch validation interrupted", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]FileRecord, 0, len(candidates))
	for i, c := range candidates {
		if accepted[i] {
			records = append(records, FileRecord{Name: c.Name, Size: int64(len(c.Data)), Data: c.Data})
		}
	}
	return records, nil
}

// appendAccepted appends records to state, up to the file limit, and sets
// the warning when fewer than total candidates made it into the list.
func (m *PDFMerger) appendAccepted(state MergeState, records []FileRecord, total int) MergeState {
	if m.maxFiles > 0 {
		room := max(m.maxFiles-state.Files.Len(), 0)
		if len(records) > room {
			m.logger.Debug("file limit reached", "limit", m.maxFiles, "dropped", len(records)-room)
			records = records[:room]
		}
	}

	next := state
	next.Files = state.Files.Append(records...)
	next.Notice = Notice{}
	if len(records) < total {
		next.Notice = warning(MsgSkippedFiles)
	}
	return next
}

// Move swaps the file at i with its neighbour. Edges and bad indexes are no-ops.
func (m *PDFMerger) Move(state MergeState, i int, d Direction) MergeState {
	next := state
	next.Files = state.Files.Move(i, d)
	return next
}

// Remove drops the file at i. A bad index is a no-op.
func (m *PDFMerger) Remove(state MergeState, i int) MergeState {
	next := state
	next.Files = state.Files.Remove(i)
	return next
}

// Clear empties the list and clears the notice.
func (m *PDFMerger) Clear(state MergeState) MergeState {
	return MergeState{Processing: state.Processing}
}

// Merge concatenates every file's pages in list order.
// With fewer than two files the engine is not invoked and an error notice
// is set. Any engine failure sets the generic error notice and returns no
// download; the list itself is never changed by a merge.
func (m *PDFMerger) Merge(ctx context.Context, state MergeState) (MergeState, *Download) {
	next := state
	next.Processing = false

	switch state.Files.Len() {
	case 0:
		next.Notice = failure(MsgNoFiles)
		return next, nil
	case 1:
		next.Notice = failure(MsgOneFile)
		return next, nil
	}

	next.Notice = Notice{}
	records := state.Files.Records()
	docs := make([][]byte, len(records))
	for i, r := range records {
		docs[i] = r.Data
	}

	out, err := m.merge(ctx, docs)
	if err != nil {
		m.logger.Warn("merge failed", "files", len(docs), "error", err)
		next.Notice = failure(MsgMergeFailed)
		return next, nil
	}

	return next, &Download{
		Filename:    MergedFilename,
		ContentType: ContentTypePDF,
		Data:        out,
	}
}

// merge calls the engine, turning a panic into an error.
func (m *PDFMerger) merge(ctx context.Context, docs [][]byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return m.engine.Merge(ctx, docs)
}
