package toolbox

// Notes:
// - mockRenderer stands in for go-rod; it reads the temp file so the test
//   sees exactly what Chrome would have loaded.

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	path    string
	content string
	result  []byte
	err     error
	closed  bool
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	m.path = filePath
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	m.content = string(data)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockRenderer) Close() error {
	m.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestBrowserExporter_ToPDF
// ---------------------------------------------------------------------------

func TestBrowserExporter_ToPDF(t *testing.T) {
	t.Parallel()

	t.Run("renders temp html file", func(t *testing.T) {
		t.Parallel()

		r := &mockRenderer{result: []byte("%PDF-1.7")}
		e := &BrowserExporter{renderer: r}

		got, err := e.ToPDF(context.Background(), "<html><body>hi</body></html>")
		if err != nil {
			t.Fatalf("ToPDF() error = %v", err)
		}
		if string(got) != "%PDF-1.7" {
			t.Errorf("ToPDF() = %q", got)
		}
		if !strings.HasSuffix(r.path, ".html") {
			t.Errorf("rendered path %q, want .html file", r.path)
		}
		if r.content != "<html><body>hi</body></html>" {
			t.Errorf("rendered content = %q", r.content)
		}
		if _, err := os.Stat(r.path); !os.IsNotExist(err) {
			t.Error("temp file not removed after rendering")
		}
	})

	t.Run("renderer error propagates", func(t *testing.T) {
		t.Parallel()

		r := &mockRenderer{err: ErrPageLoad}
		e := &BrowserExporter{renderer: r}

		_, err := e.ToPDF(context.Background(), "<p>x</p>")
		if !errors.Is(err, ErrPageLoad) {
			t.Errorf("error = %v, want ErrPageLoad", err)
		}
		if _, err := os.Stat(r.path); !os.IsNotExist(err) {
			t.Error("temp file not removed after a failure")
		}
	})
}

func TestBrowserExporter_Close(t *testing.T) {
	t.Parallel()

	r := &mockRenderer{}
	e := &BrowserExporter{renderer: r}
	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !r.closed {
		t.Error("renderer not closed")
	}

	if err := (&BrowserExporter{}).Close(); err != nil {
		t.Errorf("Close() on zero exporter error = %v", err)
	}
}

func TestNewBrowserExporter_DefaultTimeout(t *testing.T) {
	t.Parallel()

	e := NewBrowserExporter(0)
	r, ok := e.renderer.(*rodRenderer)
	if !ok {
		t.Fatalf("renderer type = %T", e.renderer)
	}
	if r.timeout != DefaultExportTimeout {
		t.Errorf("timeout = %v, want %v", r.timeout, DefaultExportTimeout)
	}
}

func TestRodRenderer_CanceledBeforeLaunch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(DefaultExportTimeout)
	if _, err := r.RenderFromFile(ctx, "/nonexistent.html"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("browser launched for a canceled context")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on unlaunched renderer error = %v", err)
	}
}

func TestPrintOptions(t *testing.T) {
	t.Parallel()

	o := printOptions()
	if *o.PaperWidth != 8.5 || *o.PaperHeight != 11 {
		t.Errorf("paper = %vx%v, want 8.5x11", *o.PaperWidth, *o.PaperHeight)
	}
	for name, m := range map[string]*float64{
		"top": o.MarginTop, "bottom": o.MarginBottom, "left": o.MarginLeft, "right": o.MarginRight,
	} {
		if *m != 0.5 {
			t.Errorf("margin %s = %v, want 0.5", name, *m)
		}
	}
	if !o.PrintBackground {
		t.Error("PrintBackground = false")
	}
}
