package assets

// AssetLoader defines the contract for loading fonts and themes by name.
type AssetLoader interface {
	// LoadFont returns the raw TrueType/OpenType bytes of a font.
	// Returns ErrFontNotFound if the font doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadFont(name string) ([]byte, error)

	// LoadStyle returns a chroma XML style document.
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) ([]byte, error)
}
