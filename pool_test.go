package toolbox

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// poolExporter is a mockExporter that can fail on Close.
type poolExporter struct {
	mockExporter
	closeErr error
	closes   atomic.Int32
}

func (p *poolExporter) Close() error {
	p.closes.Add(1)
	return p.closeErr
}

func countingPool(n int) (*ExporterPool, *[]*poolExporter, *sync.Mutex) {
	var mu sync.Mutex
	var made []*poolExporter
	pool := newExporterPool(n, func() PDFExporter {
		mu.Lock()
		defer mu.Unlock()
		e := &poolExporter{mockExporter: mockExporter{result: []byte("%PDF")}}
		made = append(made, e)
		return e
	})
	return pool, &made, &mu
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := ResolvePoolSize(3); got != 3 {
		t.Errorf("ResolvePoolSize(3) = %d, want 3", got)
	}

	want := runtime.GOMAXPROCS(0) / cpuDivisor
	want = max(MinPoolSize, min(MaxPoolSize, want))
	for _, in := range []int{0, -1} {
		if got := ResolvePoolSize(in); got != want {
			t.Errorf("ResolvePoolSize(%d) = %d, want %d", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestExporterPool
// ---------------------------------------------------------------------------

func TestExporterPool_Size(t *testing.T) {
	t.Parallel()

	if got := newExporterPool(0, nil).Size(); got != 1 {
		t.Errorf("Size() = %d, want 1 for a zero request", got)
	}
	if got := newExporterPool(4, nil).Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}
}

func TestExporterPool_LazyCreationAndReuse(t *testing.T) {
	t.Parallel()

	pool, made, mu := countingPool(2)
	ctx := context.Background()

	for range 5 {
		if _, err := pool.ToPDF(ctx, "<p>x</p>"); err != nil {
			t.Fatalf("ToPDF() error = %v", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(*made) != 1 {
		t.Errorf("created %d exporters for sequential use, want 1", len(*made))
	}
}

func TestExporterPool_BlocksWhenExhausted(t *testing.T) {
	t.Parallel()

	pool, _, _ := countingPool(1)
	e, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() on exhausted pool error = %v, want DeadlineExceeded", err)
	}

	pool.Release(e)
	got, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() after release error = %v", err)
	}
	if got != e {
		t.Error("released exporter was not reused")
	}
}

func TestExporterPool_Close(t *testing.T) {
	t.Parallel()

	pool, made, mu := countingPool(2)
	ctx := context.Background()

	a, _ := pool.Acquire(ctx)
	b, _ := pool.Acquire(ctx)
	pool.Release(a)

	mu.Lock()
	(*made)[1].closeErr = errors.New("browser gone")
	mu.Unlock()

	err := pool.Close()
	if err == nil || err.Error() != "browser gone" {
		t.Errorf("Close() error = %v, want the exporter error", err)
	}

	mu.Lock()
	for i, e := range *made {
		if e.closes.Load() != 1 {
			t.Errorf("exporter %d closed %d times", i, e.closes.Load())
		}
	}
	mu.Unlock()

	// Release after close must not panic on the closed channel.
	pool.Release(b)

	if _, err := pool.Acquire(ctx); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
	if _, err := pool.ToPDF(ctx, "x"); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("ToPDF() after Close error = %v, want ErrPoolClosed", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestExporterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool, made, mu := countingPool(3)
	defer func() { _ = pool.Close() }()

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			if _, err := pool.ToPDF(context.Background(), "<p>x</p>"); err != nil {
				t.Errorf("ToPDF() error = %v", err)
			}
		})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(*made) > 3 {
		t.Errorf("created %d exporters, want at most 3", len(*made))
	}
}
