package assets

import (
	"errors"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadFont loads a font, trying the custom loader first if available.
func (r *AssetResolver) LoadFont(name string) ([]byte, error) {
	return r.loadWithFallback(func(loader AssetLoader) ([]byte, error) {
		return loader.LoadFont(name)
	})
}

// LoadStyle loads a style, trying the custom loader first if available.
func (r *AssetResolver) LoadStyle(name string) ([]byte, error) {
	return r.loadWithFallback(func(loader AssetLoader) ([]byte, error) {
		return loader.LoadStyle(name)
	})
}

func (r *AssetResolver) loadWithFallback(loadFn func(AssetLoader) ([]byte, error)) ([]byte, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	data, err := loadFn(r.custom)
	if err == nil {
		return data, nil
	}

	// Only fall back for "not found", not validation or I/O errors.
	if !isNotFoundError(err) {
		return nil, err
	}

	return loadFn(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrFontNotFound) || errors.Is(err, ErrStyleNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
