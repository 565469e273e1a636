package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-toolbox"
	"github.com/alnah/go-toolbox/internal/config"
	"github.com/alnah/go-toolbox/internal/session"
	"github.com/alnah/go-toolbox/internal/web"
)

// runServe runs the web toolbox until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional[0])
	}

	cfg, err := loadConfig(f.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	applyServeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Address())
	if err != nil {
		return fmt.Errorf("%w on %s: %w", ErrListen, cfg.Server.Address(), err)
	}
	return serve(ctx, cfg, ln, env)
}

// applyServeFlags overlays explicitly set flags on cfg.
func applyServeFlags(f *serveFlags, cfg *config.Config) {
	if f.port != 0 {
		cfg.Server.Port = f.port
	}
	if f.basePath != "" {
		cfg.Server.BasePath = strings.TrimSuffix(f.basePath, "/")
	}
	if f.pdf {
		cfg.Export.PDF = true
	}
	if f.workers != 0 {
		cfg.Export.Workers = f.workers
	}
	switch {
	case f.logLevel != "":
		cfg.Log.Level = strings.ToLower(f.logLevel)
	case f.common.verbose:
		cfg.Log.Level = config.LogLevelDebug
	case f.common.quiet:
		cfg.Log.Level = config.LogLevelError
	}
}

// serve wires the tools to the web server and serves ln until ctx ends.
// It owns ln and closes it on return.
func serve(ctx context.Context, cfg *config.Config, ln net.Listener, env *Environment) error {
	logger := slog.New(slog.NewJSONHandler(env.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	logger.Info("configuration loaded",
		slog.String("address", ln.Addr().String()),
		slog.String("base_path", cfg.Server.BasePath),
		slog.Bool("pdf_export", cfg.Export.PDF),
		slog.String("log_level", cfg.Log.Level))

	mdOpts := []toolbox.MarkdownOption{
		toolbox.WithLogger(logger),
		toolbox.WithHighlightStyle(cfg.Markdown.Style),
		toolbox.WithAssetPath(cfg.Assets.BasePath),
	}
	if cfg.Export.PDF {
		pool := toolbox.NewExporterPool(toolbox.ResolvePoolSize(cfg.Export.Workers), cfg.Export.TimeoutDuration())
		defer func() {
			if err := pool.Close(); err != nil {
				logger.Warn("closing browser pool", slog.String("error", err.Error()))
			}
		}()
		mdOpts = append(mdOpts, toolbox.WithPDFExporter(pool))
	}

	md, err := toolbox.NewMarkdownTool(mdOpts...)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("markdown tool: %w", err)
	}

	merger := toolbox.NewPDFMerger(
		toolbox.WithValidationWorkers(cfg.Limits.ValidationWorkers),
		toolbox.WithMaxFiles(cfg.Limits.MaxFiles),
		toolbox.WithMergerLogger(logger),
	)

	storeOpts := []session.Option{
		session.WithMerger(merger),
		session.WithLogger(logger),
	}
	if cfg.Markdown.InitialFile != "" {
		initial, err := os.ReadFile(cfg.Markdown.InitialFile) // #nosec G304 -- path from trusted config
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		storeOpts = append(storeOpts, session.WithInitialMarkdown(string(initial)))
	}
	store := session.NewStore(cfg.Session.TTLDuration(), storeOpts...)

	srv, err := web.NewServer(md, store,
		web.WithBasePath(cfg.Server.BasePath),
		web.WithMaxUploadBytes(cfg.Limits.MaxUploadBytes),
		web.WithAssetPath(cfg.Assets.BasePath),
		web.WithHighlightStyle(cfg.Markdown.Style),
		web.WithLogger(logger),
	)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("web server: %w", err)
	}

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadTimeoutDuration(),
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return store.Run(gCtx, cfg.Session.SweepIntervalDuration())
	})

	g.Go(func() error {
		logger.Info("starting HTTP server", slog.String("address", ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeoutDuration())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
