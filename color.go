package picode

import (
	"image/color"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s is a #RRGGBB color.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// ParseColor converts a #RRGGBB string to an integer packed in BBGGRR
// order: value = B<<16 | G<<8 | R. "#FF0000" yields 0x0000FF.
func ParseColor(s string) (uint32, error) {
	if !IsHexColor(s) {
		return 0, newError(KindInvalidColor, "%s is not a valid hexadecimal color.", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, newError(KindInvalidColor, "%s is not a valid hexadecimal color.", s)
	}
	r, g, b := c.RGB255()
	return uint32(b)<<16 | uint32(g)<<8 | uint32(r), nil
}

// unpackColor converts a BBGGRR packed value to an opaque color.
func unpackColor(v uint32) color.RGBA {
	return color.RGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: 0xff,
	}
}

// rgba parses a color already validated by Resolve.
func rgba(s string) color.RGBA {
	v, err := ParseColor(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return unpackColor(v)
}
