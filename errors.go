package toolbox

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrNothingToExport  = errors.New("nothing to export")
	ErrExportDisabled   = errors.New("PDF export is not configured")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrPoolClosed       = errors.New("exporter pool is closed")
	ErrMergeInProgress  = errors.New("a merge is already in progress")
	ErrUnknownDirection = errors.New("unknown move direction")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
