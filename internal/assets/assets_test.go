package assets

// Notes:
// - The symlink escape test is skipped where symlinks cannot be created
//   (Windows without developer mode).

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeAsset creates a file under dir, making parent directories.
func writeAsset(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeTemplateSet writes a complete template set whose pages contain marker.
func writeTemplateSet(t *testing.T, dir, name, marker string) {
	t.Helper()
	for _, file := range []string{layoutFile, homeFile, markdownFile, pdfMergeFile} {
		writeAsset(t, dir, filepath.Join("templates", name, file), marker+":"+file)
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in assets
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	for _, name := range []string{PreviewStyleName, AppStyleName} {
		css, err := LoadStyle(name)
		if err != nil {
			t.Fatalf("LoadStyle(%q) error = %v", name, err)
		}
		if css == "" {
			t.Errorf("LoadStyle(%q) returned empty content", name)
		}
	}

	preview, _ := LoadStyle(PreviewStyleName)
	if !strings.Contains(preview, ".markdown-preview") {
		t.Error("preview style should target .markdown-preview")
	}

	if _, err := LoadStyle("nonexistent-xyz"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(nonexistent) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := LoadStyle("../styles/app"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(traversal) error = %v, want ErrInvalidAssetName", err)
	}
}

func TestEmbeddedLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	ts, err := LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}

	checks := map[string]struct {
		content string
		marker  string
	}{
		"layout":    {ts.Layout, `{{define "layout"}}`},
		"home":      {ts.Home, `{{define "content"}}`},
		"markdown":  {ts.Markdown, `name="markdown"`},
		"pdf-merge": {ts.PDFMerge, `name="files"`},
	}
	for name, c := range checks {
		if !strings.Contains(c.content, c.marker) {
			t.Errorf("%s template missing %q", name, c.marker)
		}
	}

	if _, err := LoadTemplateSet("nonexistent"); !errors.Is(err, ErrTemplateSetNotFound) {
		t.Errorf("LoadTemplateSet(nonexistent) error = %v, want ErrTemplateSetNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader - Custom directories
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"nonexistent directory", "/nonexistent/path/abc123xyz"},
	}
	for _, tt := range tests {
		if _, err := NewFilesystemLoader(tt.path); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("%s: error = %v, want ErrInvalidBasePath", tt.name, err)
		}
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFilesystemLoader(file); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("file path: error = %v, want ErrInvalidBasePath", err)
	}
}

func TestFilesystemLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	t.Run("complete set", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTemplateSet(t, dir, "custom", "mine")
		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatal(err)
		}

		ts, err := loader.LoadTemplateSet("custom")
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.Name != "custom" || ts.PDFMerge != "mine:pdf-merge.html" {
			t.Errorf("unexpected template set: %+v", ts)
		}
	})

	t.Run("incomplete set", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, filepath.Join("templates", "partial", layoutFile), "x")
		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatal(err)
		}

		_, err = loader.LoadTemplateSet("partial")
		if !errors.Is(err, ErrIncompleteTemplateSet) {
			t.Errorf("error = %v, want ErrIncompleteTemplateSet", err)
		}
	})

	t.Run("missing set", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := loader.LoadTemplateSet("absent"); !errors.Is(err, ErrTemplateSetNotFound) {
			t.Errorf("error = %v, want ErrTemplateSetNotFound", err)
		}
	})
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeAsset(t, outside, "secret.css", "body{}")

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "styles", "escape.css")
	if err := os.Symlink(filepath.Join(outside, "secret.css"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadStyle("escape"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle(symlink) error = %v, want ErrPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestAssetResolver - Custom-first fallback
// ---------------------------------------------------------------------------

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if r.custom != nil {
			t.Error("expected no custom loader for empty path")
		}
		if _, err := r.LoadStyle(AppStyleName); err != nil {
			t.Errorf("LoadStyle() error = %v", err)
		}
	})

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "styles/app.css", "/* custom */")
		writeTemplateSet(t, dir, DefaultTemplateSetName, "custom")

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		css, err := r.LoadStyle(AppStyleName)
		if err != nil || css != "/* custom */" {
			t.Errorf("LoadStyle() = %q, %v; want custom content", css, err)
		}
		ts, err := r.LoadTemplateSet(DefaultTemplateSetName)
		if err != nil || ts.Home != "custom:home.html" {
			t.Errorf("LoadTemplateSet() = %+v, %v; want custom set", ts, err)
		}
	})

	t.Run("falls back when custom lacks asset", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		css, err := r.LoadStyle(PreviewStyleName)
		if err != nil || !strings.Contains(css, ".markdown-preview") {
			t.Errorf("LoadStyle() fallback = %v", err)
		}
		if _, err := r.LoadTemplateSet(DefaultTemplateSetName); err != nil {
			t.Errorf("LoadTemplateSet() fallback error = %v", err)
		}
	})

	t.Run("incomplete custom set does not fall back", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, filepath.Join("templates", DefaultTemplateSetName, homeFile), "x")
		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := r.LoadTemplateSet(DefaultTemplateSetName); !errors.Is(err, ErrIncompleteTemplateSet) {
			t.Errorf("error = %v, want ErrIncompleteTemplateSet", err)
		}
	})

	t.Run("invalid name does not fall back", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := r.LoadStyle("../app"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
		if _, err := r.LoadTemplateSet("default.old"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplateSet() error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewAssetResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}
