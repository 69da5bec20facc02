package picode

import (
	"errors"

	"github.com/alnah/go-picode/internal/assets"
)

// BundledFontFamily is the family of the fonts compiled into picode.
const BundledFontFamily = assets.DefaultFontFamily

// AssetLoader loads font files and chroma XML styles by name.
// NewAssetLoader returns the directory-backed implementation.
type AssetLoader interface {
	// LoadFont loads TrueType/OpenType font data by name (without extension).
	// Returns ErrFontNotFound if the font doesn't exist.
	LoadFont(name string) ([]byte, error)

	// LoadStyle loads a chroma XML style by name (without .xml extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) ([]byte, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - fonts/{name}.ttf or fonts/{name}.otf for fonts
//   - styles/{name}.xml for chroma styles
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter exposes an internal resolver with public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadFont(name string) ([]byte, error) {
	data, err := a.resolver.LoadFont(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

func (a *assetLoaderAdapter) LoadStyle(name string) ([]byte, error) {
	data, err := a.resolver.LoadStyle(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

// assetErrorMap lists the internal sentinels and their public counterparts.
// Order matters: the first match wins.
var assetErrorMap = []struct{ internal, public error }{
	{assets.ErrFontNotFound, ErrFontNotFound},
	{assets.ErrStyleNotFound, ErrStyleNotFound},
	{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
	{assets.ErrPathTraversal, ErrInvalidAssetPath},
	{assets.ErrInvalidAssetName, ErrInvalidAssetPath},
}

// convertAssetError re-tags an internal asset error with the public sentinel.
// The message is kept as is; errors.Is only sees the public sentinel.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range assetErrorMap {
		if errors.Is(err, m.internal) {
			return &assetError{public: m.public, msg: err.Error()}
		}
	}
	return err
}

type assetError struct {
	public error
	msg    string
}

func (e *assetError) Error() string { return e.msg }
func (e *assetError) Unwrap() error { return e.public }

// Compile-time interface checks.
var (
	_ AssetLoader        = (*assetLoaderAdapter)(nil)
	_ assets.AssetLoader = AssetLoader(nil)
)
