package assets

import (
	"fmt"
	"strings"
	"unicode"
)

// maxAssetNameLength keeps the name plus extension under common filename limits.
const maxAssetNameLength = 200

// ValidateAssetName checks that a font or style name maps to a single file
// in its asset directory. The loader appends the extension, so names
// containing dots are rejected along with separators and control characters.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > maxAssetNameLength:
		return fmt.Errorf("%w: name longer than %d bytes", ErrInvalidAssetName, maxAssetNameLength)
	case strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return fmt.Errorf("%w: control character in %q", ErrInvalidAssetName, name)
	}
	return nil
}
