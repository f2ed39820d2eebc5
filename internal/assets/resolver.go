package assets

import (
	"errors"
	"os"
)

// AssetResolver combines the site's template directory with the default
// theme. Site templates win; a name the site does not provide falls back to
// the embedded theme.
type AssetResolver struct {
	custom   AssetLoader // nil when the site has no template directory
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// A customBasePath that is empty or does not exist selects the default
// theme alone. Any other invalid path is an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath == "" {
		return resolver, nil
	}
	if _, err := os.Stat(customBasePath); errors.Is(err, os.ErrNotExist) {
		return resolver, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	resolver.custom = fsLoader
	return resolver, nil
}

// LoadTemplate loads a template, trying the site directory first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	content, err := r.custom.LoadTemplate(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}

	return r.embedded.LoadTemplate(name)
}

// HasCustomLoader returns true if a site template directory is in use.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
