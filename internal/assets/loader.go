package assets

// AssetLoader defines the contract for loading CSS styles and HTML templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the page templates of the named set.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrIncompleteTemplateSet if some of its pages are missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
