package main

// Notes:
// - --pdf with a real browser is not exercised here; the library covers the
//   browser path behind the integration build tag.
// - The clipboard is the fake from newTestIO, never the system one.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-toolbox"
)

func writeMarkdown(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunRender - Output modes
// ---------------------------------------------------------------------------

func TestRunRender_FragmentToStdout(t *testing.T) {
	t.Parallel()

	tio := newTestIO("")
	in := writeMarkdown(t, "# Title\n\n<script>alert(1)</script>\n\nBody")

	if err := runRender(context.Background(), []string{in}, tio.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	out := tio.stdout.String()
	if !strings.Contains(out, "Title</h1>") || !strings.Contains(out, "<p>Body</p>") {
		t.Errorf("stdout = %q, want rendered fragment", out)
	}
	if strings.Contains(out, "<script") {
		t.Error("raw script reached the output")
	}
	if strings.Contains(out, "<!DOCTYPE") {
		t.Error("fragment output should not be a full document")
	}
}

func TestRunRender_Stdin(t *testing.T) {
	t.Parallel()

	tio := newTestIO("*from stdin*")
	if err := runRender(context.Background(), []string{"-"}, tio.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	if !strings.Contains(tio.stdout.String(), "<em>from stdin</em>") {
		t.Errorf("stdout = %q", tio.stdout)
	}
}

func TestRunRender_StandaloneToFile(t *testing.T) {
	t.Parallel()

	tio := newTestIO("")
	in := writeMarkdown(t, "# Report\n\n```go\nfunc main() {}\n```")
	out := filepath.Join(t.TempDir(), toolbox.HTMLExportFilename)

	args := []string{in, "--standalone", "-o", out, "--title", "Q1 Report", "--style", "monokai"}
	if err := runRender(context.Background(), args, tio.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	for _, w := range []string{"<!DOCTYPE html>", "<title>Q1 Report</title>", "<style>", ".chroma", "Report</h1>"} {
		if !strings.Contains(doc, w) {
			t.Errorf("document missing %q", w)
		}
	}
	if tio.stdout.Len() != 0 {
		t.Error("nothing should be written to stdout with --output")
	}
	if !strings.Contains(tio.stderr.String(), "wrote "+out) {
		t.Errorf("stderr = %q, want progress line", tio.stderr)
	}
}

func TestRunRender_Quiet(t *testing.T) {
	t.Parallel()

	tio := newTestIO("")
	in := writeMarkdown(t, "text")
	out := filepath.Join(t.TempDir(), "out.html")

	if err := runRender(context.Background(), []string{in, "-o", out, "-q"}, tio.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	if tio.stderr.Len() != 0 {
		t.Errorf("stderr = %q, want nothing with --quiet", tio.stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRunRender_Copy - Clipboard
// ---------------------------------------------------------------------------

func TestRunRender_Copy(t *testing.T) {
	t.Parallel()

	t.Run("copies the source", func(t *testing.T) {
		t.Parallel()

		tio := newTestIO("")
		in := writeMarkdown(t, "# Copy **me**")

		if err := runRender(context.Background(), []string{in, "--copy"}, tio.env); err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		if len(tio.copied) != 1 || tio.copied[0] != "# Copy **me**" {
			t.Errorf("clipboard = %q, want the markdown source", tio.copied)
		}
	})

	t.Run("failure is a warning", func(t *testing.T) {
		t.Parallel()

		tio := newTestIO("")
		tio.clipErr = errors.New("no clipboard utility")
		in := writeMarkdown(t, "x")

		if err := runRender(context.Background(), []string{in, "--copy"}, tio.env); err != nil {
			t.Fatalf("runRender() error = %v, want clipboard failure ignored", err)
		}
		if !strings.Contains(tio.stderr.String(), "warning: could not copy") {
			t.Errorf("stderr = %q", tio.stderr)
		}
		if tio.stdout.Len() == 0 {
			t.Error("render output missing after clipboard failure")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunRender_Errors
// ---------------------------------------------------------------------------

func TestRunRender_Errors(t *testing.T) {
	t.Parallel()

	md := writeMarkdown(t, "# x")
	empty := writeMarkdown(t, "")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no input", nil, ErrNoInput},
		{"two inputs", []string{md, md}, ErrUsage},
		{"pdf without output", []string{md, "--pdf"}, ErrUsage},
		{"bad timeout", []string{md, "--timeout", "soon"}, ErrUsage},
		{"unknown style", []string{md, "--style", "no-such-style"}, toolbox.ErrStyleNotFound},
		{"bad asset path", []string{md, "--asset-path", "/definitely/not/here"}, toolbox.ErrInvalidAssetPath},
		{"empty document", []string{empty}, toolbox.ErrNothingToExport},
		{"missing input", []string{"/no/such.md"}, ErrReadInput},
		{"unwritable output", []string{md, "-o", filepath.Join(t.TempDir(), "missing", "out.html")}, ErrWriteOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tio := newTestIO("")
			err := runRender(context.Background(), tt.args, tio.env)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
