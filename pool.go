package toolbox

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ExporterPool manages a pool of PDFExporter instances for parallel exports.
// Each exporter has its own browser instance, enabling true parallelism.
// Exporters are created lazily on first acquire to avoid startup delay.
// ExporterPool itself implements PDFExporter.
type ExporterPool struct {
	size      int
	newFn     func() PDFExporter
	exporters []PDFExporter
	sem       chan PDFExporter
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewExporterPool creates a pool with capacity for n browser exporters,
// each using timeout for page loads.
func NewExporterPool(n int, timeout time.Duration) *ExporterPool {
	return newExporterPool(n, func() PDFExporter { return NewBrowserExporter(timeout) })
}

func newExporterPool(n int, newFn func() PDFExporter) *ExporterPool {
	if n < 1 {
		n = 1
	}

	return &ExporterPool{
		size:      n,
		newFn:     newFn,
		exporters: make([]PDFExporter, 0, n),
		sem:       make(chan PDFExporter, n),
	}
}

// Acquire gets an exporter from the pool, creating one if needed.
// Blocks while all exporters are in use, until ctx is done.
func (p *ExporterPool) Acquire(ctx context.Context) (PDFExporter, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}

	// Try to get an existing exporter (non-blocking)
	select {
	case e := <-p.sem:
		p.mu.Unlock()
		return e, nil
	default:
	}

	if p.created < p.size {
		p.created++
		e := p.newFn()
		p.exporters = append(p.exporters, e)
		p.mu.Unlock()
		return e, nil
	}
	p.mu.Unlock()

	// All exporters created, wait for one to be released
	select {
	case e, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return e, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns an exporter to the pool.
func (p *ExporterPool) Release(e PDFExporter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// Never blocks: at most size exporters exist and each holds one slot.
	p.sem <- e
}

// ToPDF prints htmlContent with the next free exporter.
func (p *ExporterPool) ToPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	e, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(e)
	return e.ToPDF(ctx, htmlContent)
}

// Close releases all browser resources.
// Returns an aggregated error if multiple exporters fail to close.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	exporters := p.exporters
	p.mu.Unlock()

	var errs []error
	for _, e := range exporters {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ExporterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware once automaxprocs has run
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// Compile-time interface check.
var _ PDFExporter = (*ExporterPool)(nil)
