package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-toolbox"
	"github.com/alnah/go-toolbox/internal/fileutil"
)

// defaultMergeOutput is where merge writes without --output.
const defaultMergeOutput = toolbox.MergedFilename

// runMerge concatenates PDF files in argument order.
func runMerge(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseMergeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: merge needs PDF files", ErrNoInput)
	}

	cfg, err := loadConfig(f.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if f.workers != 0 {
		cfg.Limits.ValidationWorkers = f.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	candidates, err := readCandidates(positional)
	if err != nil {
		return err
	}

	logger := discardLogger()
	if f.common.verbose {
		logger = slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	merger := toolbox.NewPDFMerger(
		toolbox.WithValidationWorkers(cfg.Limits.ValidationWorkers),
		toolbox.WithMaxFiles(cfg.Limits.MaxFiles),
		toolbox.WithMergerLogger(logger),
	)

	st := merger.AddBatch(ctx, toolbox.MergeState{}, candidates)
	if err := ctx.Err(); err != nil {
		return err
	}
	if st.Notice.Kind == toolbox.NoticeWarning {
		fmt.Fprintf(env.Stderr, "warning: %s\n", st.Notice.Text)
	}

	switch st.Files.Len() {
	case 0:
		return fmt.Errorf("%w: %w", ErrTooFewFiles, ErrNoValidFiles)
	case 1:
		return fmt.Errorf("%w: only %s was accepted", ErrTooFewFiles, st.Files.Records()[0].Name)
	}

	if f.common.verbose {
		for i, rec := range st.Files.Records() {
			fmt.Fprintf(env.Stderr, "%d. %s (%s)\n", i+1, rec.Name, toolbox.FormatSize(rec.Size))
		}
	}

	st, dl := merger.Merge(ctx, st)
	if dl == nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", ErrMergeFailed, st.Notice.Text)
	}

	output := f.output
	if output == "" {
		output = defaultMergeOutput
	}
	if err := writeOutput(output, dl.Data, env.Stdout); err != nil {
		return err
	}
	logf(env, f.common, "merged %d files into %s (%s)", st.Files.Len(), output,
		toolbox.FormatSize(int64(len(dl.Data))))
	return nil
}

// readCandidates reads each path into a Candidate. The declared type comes
// from the extension, as a browser file picker would report it.
func readCandidates(paths []string) ([]toolbox.Candidate, error) {
	candidates := make([]toolbox.Candidate, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		candidates = append(candidates, toolbox.Candidate{
			Name:        filepath.Base(path),
			ContentType: fileutil.DeclaredContentType(path),
			Data:        data,
		})
	}
	return candidates, nil
}
