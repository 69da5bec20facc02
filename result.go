package picode

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/alnah/go-picode/internal/fileutil"
)

// Result is a rendered image with details of how it was produced.
type Result struct {
	Image    *image.RGBA
	Lexer    string   // Name of the lexer used
	Style    string   // Name of the style used
	Font     string   // Family of the regular face used
	Warnings []string // Non-fatal conditions met while rendering
}

// Encode writes the image to w as PNG.
func (r *Result) Encode(w io.Writer) error {
	if err := png.Encode(w, r.Image); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeImage, err)
	}
	return nil
}

// PNG returns the image encoded as PNG.
func (r *Result) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the image to path as PNG. The file is replaced atomically,
// so a failed save never leaves a truncated image behind.
func (r *Result) Save(path string) error {
	data, err := r.PNG()
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
