package toolbox

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-toolbox/internal/fileutil"
	"github.com/alnah/go-toolbox/internal/process"
)

// PDFExporter prints a standalone HTML document to PDF.
type PDFExporter interface {
	ToPDF(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ PDFExporter = (*BrowserExporter)(nil)
	_ pdfRenderer = (*rodRenderer)(nil)
)

// PDF page dimensions in inches (US Letter format).
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
	marginInches      = 0.5
)

// DefaultExportTimeout bounds page load when the context has no deadline.
const DefaultExportTimeout = 30 * time.Second

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		process.KillTree(l.PID())
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillTree(l.PID())
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return browser, nil
}

// Close releases browser resources. Chrome helper processes are killed
// with the browser so none outlive the exporter.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillTree(r.launcher.PID())
		r.launcher.Cleanup() // removes the temporary user-data-dir
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// printOptions returns US Letter with half-inch margins and backgrounds on,
// so code block shading survives printing.
func printOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// BrowserExporter converts HTML to PDF using headless Chrome via go-rod.
// The browser is launched on first use and reused until Close.
type BrowserExporter struct {
	renderer pdfRenderer
}

// NewBrowserExporter creates a BrowserExporter. A non-positive timeout
// selects DefaultExportTimeout.
func NewBrowserExporter(timeout time.Duration) *BrowserExporter {
	if timeout <= 0 {
		timeout = DefaultExportTimeout
	}
	return &BrowserExporter{renderer: newRodRenderer(timeout)}
}

// ToPDF writes htmlContent to a temp file and prints it.
// Uses US Letter format (8.5x11 inches) with 0.5 inch margins.
func (e *BrowserExporter) ToPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath)
}

// Close releases browser resources.
func (e *BrowserExporter) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}
