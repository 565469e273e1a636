package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplateSet loads a template set from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	return readTemplateSet(name, func(file string) ([]byte, error) {
		return templates.ReadFile("templates/" + name + "/" + file)
	})
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
