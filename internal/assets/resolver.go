package assets

import (
	"errors"
)

// AssetResolver serves the web UI's styles and template sets. Assets found
// under the custom base path replace the built-in ones; anything the custom
// directory lacks comes from the embedded copy.
type AssetResolver struct {
	custom   AssetLoader // nil without a custom base path
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath serves
// the built-in assets only; a non-empty one must be a readable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadStyle returns the named stylesheet.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return resolve(r, AssetLoader.LoadStyle, name)
}

// LoadTemplateSet returns the named template set. A custom set missing only
// some pages is an error; it is not merged with the built-in pages.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return resolve(r, AssetLoader.LoadTemplateSet, name)
}

// resolve asks the custom loader first and falls back to the embedded one
// only when the asset is absent. Invalid names and read errors are returned.
func resolve[T any](r *AssetResolver, load func(AssetLoader, string) (T, error), name string) (T, error) {
	if r.custom == nil {
		return load(r.embedded, name)
	}

	v, err := load(r.custom, name)
	if err == nil || !isNotFound(err) {
		return v, err
	}
	return load(r.embedded, name)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateSetNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
