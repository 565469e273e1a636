// Package toolbox implements two small document tools: a Markdown
// previewer/exporter and a PDF page merger.
//
// # Markdown Tool
//
// MarkdownTool renders a MarkdownBuffer to a sanitized HTML fragment,
// copies the source to the clipboard, and exports the rendered result:
//
//	tool, err := toolbox.NewMarkdownTool()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := toolbox.NewMarkdownBuffer("# Hello\n\nWorld")
//	rendered, err := tool.Render(ctx, buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dl, _ := tool.ExportHTML(rendered, false)
//	os.WriteFile(dl.Filename, dl.Data, 0644)
//
// Rendering follows these stages:
//
//  1. Markdown preprocessing (line normalization, blank-line compression)
//  2. Markdown to HTML via Goldmark (GFM, footnotes, emoji shortcodes)
//  3. Sanitization: raw HTML and dangerous link targets are dropped
//  4. Syntax highlighting of fenced code via chroma CSS classes
//
// Sanitization happens before highlighting, so only code the sanitizer
// passed through is ever highlighted.
//
// ExportPDF prints the standalone document through headless Chrome and
// needs a PDFExporter:
//
//	pool := toolbox.NewExporterPool(toolbox.ResolvePoolSize(0), time.Minute)
//	defer pool.Close()
//	tool, err := toolbox.NewMarkdownTool(toolbox.WithPDFExporter(pool))
//
// # PDF Merge Tool
//
// PDFMerger is a set of pure transitions over MergeState:
//
//	m := toolbox.NewPDFMerger()
//	st := m.AddBatch(ctx, toolbox.MergeState{}, candidates)
//	st = m.Move(st, 1, toolbox.Up)
//	st, dl := m.Merge(ctx, st)
//	if dl == nil {
//	    fmt.Println(st.Notice.Text)
//	}
//
// User-facing problems (rejected files, too few files, a failed merge) are
// reported through MergeState.Notice rather than as errors. MergeSession
// wraps one state behind a mutex for servers and rejects a second merge
// while one is running with ErrMergeInProgress.
//
// # Error Handling
//
// Library errors are sentinels checked with errors.Is:
//
//	if errors.Is(err, toolbox.ErrExportDisabled) {
//	    // no PDF exporter configured
//	}
package toolbox
