package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
)

// Names of the bundled fonts.
const (
	FontRegular    = "gomono-regular"
	FontItalic     = "gomono-italic"
	FontBold       = "gomono-bold"
	FontBoldItalic = "gomono-bolditalic"
)

// DefaultFontFamily is the family name of the bundled fonts.
const DefaultFontFamily = "Go Mono"

// DefaultFontNames lists the bundled fonts in regular, italic, bold,
// bold-italic order.
var DefaultFontNames = [4]string{FontRegular, FontItalic, FontBold, FontBoldItalic}

var embeddedFonts = map[string][]byte{
	FontRegular:    gomono.TTF,
	FontItalic:     gomonoitalic.TTF,
	FontBold:       gomonobold.TTF,
	FontBoldItalic: gomonobolditalic.TTF,
}

//go:embed styles/*.xml
var styles embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadFont returns a bundled font by name.
func (e *EmbeddedLoader) LoadFont(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	data, ok := embeddedFonts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	return data, nil
}

// LoadStyle returns a bundled XML style by name.
func (e *EmbeddedLoader) LoadStyle(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	data, err := styles.ReadFile("styles/" + name + ".xml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return data, nil
}

// IsBundledFont reports whether name refers to one of the bundled fonts.
func IsBundledFont(name string) bool {
	_, ok := embeddedFonts[name]
	return ok
}

// StyleNames lists the bundled style names, sorted.
func StyleNames() []string {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".xml"))
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
