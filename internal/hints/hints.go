// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-toolbox/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors during PDF export.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow exports.
func ForTimeout() string {
	return format("for large documents, use --timeout or TOOLBOX_TIMEOUT")
}

// ForConfigNotFound suggests --config and the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-toolbox") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInvalidPDF explains what the merge tool accepts.
func ForInvalidPDF() string {
	return format("only files with a .pdf extension that open as PDF documents are accepted")
}

// ForTooFewFiles reminds the user that a merge needs two inputs.
func ForTooFewFiles() string {
	return format("pass at least two PDF files, in the order their pages should appear")
}

// ForAddressInUse suggests picking another port.
func ForAddressInUse() string {
	return format("use --port or TOOLBOX_PORT to listen elsewhere")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
