package assets

import "errors"

var (
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing pages")

	// ErrInvalidAssetName is returned for empty names and names with
	// separators or dots.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath is returned when the custom asset directory is
	// missing, unreadable, or not a directory.
	ErrInvalidBasePath = errors.New("invalid asset path")

	ErrAssetRead     = errors.New("failed to read asset")
	ErrPathTraversal = errors.New("asset path escapes base directory")
)
