package main

import (
	"errors"
	"os"
	"syscall"

	"github.com/alnah/go-toolbox"
	"github.com/alnah/go-toolbox/internal/assets"
	"github.com/alnah/go-toolbox/internal/config"
	"github.com/alnah/go-toolbox/internal/hints"
)

// Exit codes for the toolbox CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error, including a failed merge
	ExitUsage   = 2 // Invalid flags, config, or input
	ExitIO      = 3 // File not found, permission denied, listen failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, toolbox.ErrBrowserConnect) ||
		errors.Is(err, toolbox.ErrPageCreate) ||
		errors.Is(err, toolbox.ErrPageLoad) ||
		errors.Is(err, toolbox.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrListen) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooFewFiles) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, toolbox.ErrNothingToExport) ||
		errors.Is(err, toolbox.ErrStyleNotFound) ||
		errors.Is(err, toolbox.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrTemplateSetNotFound) ||
		errors.Is(err, assets.ErrIncompleteTemplateSet) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, toolbox.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, toolbox.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrNoValidFiles):
		return hints.ForInvalidPDF()
	case errors.Is(err, ErrTooFewFiles):
		return hints.ForTooFewFiles()
	case errors.Is(err, syscall.EADDRINUSE):
		return hints.ForAddressInUse()
	}
	return ""
}
