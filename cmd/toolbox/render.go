package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-toolbox"
	"github.com/alnah/go-toolbox/internal/config"
)

// stdinArg names standard input as the render source.
const stdinArg = "-"

// runRender renders one markdown file and writes the export.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	switch {
	case len(positional) == 0:
		return fmt.Errorf("%w: render needs a markdown file or -", ErrNoInput)
	case len(positional) > 1:
		return fmt.Errorf("%w: render takes one input, got %d", ErrUsage, len(positional))
	}
	if f.pdf && f.output == "" {
		return fmt.Errorf("%w: --pdf needs --output", ErrUsage)
	}

	cfg, err := loadConfig(f.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if err := applyRenderFlags(f, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	source, err := readSource(positional[0], env.Stdin)
	if err != nil {
		return err
	}

	logger := discardLogger()
	if f.common.verbose {
		logger = slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	opts := []toolbox.MarkdownOption{
		toolbox.WithLogger(logger),
		toolbox.WithHighlightStyle(cfg.Markdown.Style),
		toolbox.WithAssetPath(cfg.Assets.BasePath),
		toolbox.WithDocumentTitle(f.title),
		toolbox.WithClipboard(env.Clipboard),
	}
	if f.pdf {
		exporter := toolbox.NewBrowserExporter(cfg.Export.TimeoutDuration())
		defer func() { _ = exporter.Close() }()
		opts = append(opts, toolbox.WithPDFExporter(exporter))
	}

	tool, err := toolbox.NewMarkdownTool(opts...)
	if err != nil {
		return err
	}

	buf := toolbox.NewMarkdownBuffer(source)
	start := env.Now()
	rendered, err := tool.Render(ctx, buf)
	if err != nil {
		return err
	}

	if f.copy {
		if tool.Copy(buf) {
			logf(env, f.common, "copied markdown source to clipboard")
		} else {
			fmt.Fprintln(env.Stderr, "warning: could not copy to clipboard")
		}
	}

	var dl toolbox.Download
	if f.pdf {
		dl, err = tool.ExportPDF(ctx, rendered)
	} else {
		dl, err = tool.ExportHTML(rendered, f.standalone)
	}
	if err != nil {
		return err
	}

	if err := writeOutput(f.output, dl.Data, env.Stdout); err != nil {
		return err
	}
	if f.output != "" {
		logf(env, f.common, "wrote %s (%s) in %v", f.output, toolbox.FormatSize(int64(len(dl.Data))),
			env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// applyRenderFlags overlays explicitly set flags on cfg.
func applyRenderFlags(f *renderFlags, cfg *config.Config) error {
	if f.style != "" {
		cfg.Markdown.Style = f.style
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: invalid --timeout %q", ErrUsage, f.timeout)
		}
		cfg.Export.Timeout = d.String()
	}
	return nil
}

// readSource reads the markdown file at path, or stdin for "-".
func readSource(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinArg {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- path is user-provided
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- exported documents are meant to be shared
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// logf prints a progress line to stderr unless --quiet is set.
func logf(env *Environment, c commonFlags, format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(env.Stderr, format+"\n", args...)
}
