package picode

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/alnah/go-picode/internal/assets"
	"github.com/alnah/go-picode/internal/fileutil"
	"github.com/alnah/go-picode/internal/fontsys"
)

// fontDPI makes one font point equal one pixel.
const fontDPI = 72

// Face indexes within a fontSet.
const (
	faceRegular = iota
	faceItalic
	faceBold
	faceBoldItalic
)

// fontSet holds the four faces used by the highlighter and the character
// cell derived from the regular face.
type fontSet struct {
	family string
	faces  [4]font.Face
	cellW  int
	cellH  int
	ascent fixed.Int26_6
}

// face returns the face for the given weight and slant.
func (f *fontSet) face(bold, italic bool) font.Face {
	switch {
	case bold && italic:
		return f.faces[faceBoldItalic]
	case bold:
		return f.faces[faceBold]
	case italic:
		return f.faces[faceItalic]
	default:
		return f.faces[faceRegular]
	}
}

// Close releases every opened face.
func (f *fontSet) Close() error {
	if f == nil {
		return nil
	}
	var firstErr error
	for i, fc := range f.faces {
		if fc == nil {
			continue
		}
		if err := fc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		f.faces[i] = nil
	}
	return firstErr
}

// openFonts resolves the font selection of in and opens its faces.
// A missing family or an unusable path list never fails the render: the
// bundled fonts are used instead and a warning is emitted.
func (r *Renderer) openFonts(in *ResolvedInput, w *warner) (*fontSet, error) {
	size := in.Layout.FontSize
	refs := in.FontPaths

	if in.FontName != "" {
		refs = r.findFamily(in.FontName, w)
	} else if len(refs) != 4 {
		w.warnf("expected 4 font paths (regular, italic, bold, bold-italic), got %d, using bundled %s",
			len(refs), assets.DefaultFontFamily)
		refs = assets.DefaultFontNames[:]
	}

	set, err := r.openFaces(refs, size)
	if err == nil {
		return set, nil
	}
	if isBundledSet(refs) {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}

	w.warnf("%v, using bundled %s", err, assets.DefaultFontFamily)
	set, err = r.openFaces(assets.DefaultFontNames[:], size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	return set, nil
}

// findFamily returns the face references for an installed family, trying
// the platform fallback family before the bundled fonts.
func (r *Renderer) findFamily(name string, w *warner) []string {
	fam, err := r.fontIndex.Find(name)
	if err == nil {
		return fam.Paths()
	}

	fallback := fontsys.FallbackFamily()
	w.warnf("font %q not found, trying %q", name, fallback)
	if fam, err := r.fontIndex.Find(fallback); err == nil {
		return fam.Paths()
	}

	w.warnf("font %q not found, using bundled %s", fallback, assets.DefaultFontFamily)
	return assets.DefaultFontNames[:]
}

// openFaces opens the four faces named by refs at size pixels.
// On error, faces opened so far are closed.
func (r *Renderer) openFaces(refs []string, size int) (_ *fontSet, err error) {
	set := &fontSet{}
	defer func() {
		if err != nil {
			_ = set.Close()
		}
	}()

	for i, ref := range refs {
		data, err := r.readFont(ref)
		if err != nil {
			return nil, fmt.Errorf("cannot read font %q: %w", ref, err)
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("cannot parse font %q: %w", ref, err)
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     fontDPI,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot open font %q: %w", ref, err)
		}
		set.faces[i] = face

		if i == faceRegular {
			set.family = familyName(f, ref)
		}
	}

	regular := set.faces[faceRegular]
	m := regular.Metrics()
	set.ascent = m.Ascent
	set.cellH = (m.Ascent + m.Descent).Ceil()
	if adv, ok := regular.GlyphAdvance('M'); ok {
		set.cellW = adv.Ceil()
	}
	if set.cellW <= 0 {
		set.cellW = max(size*3/5, 1)
	}
	return set, nil
}

// readFont loads a font by reference: bundled and asset-directory fonts by
// name, anything else from disk.
func (r *Renderer) readFont(ref string) ([]byte, error) {
	if assets.IsBundledFont(ref) || (!fileutil.IsFilePath(ref) && filepath.Ext(ref) == "") {
		data, err := r.assets.LoadFont(ref)
		if err != nil && assets.IsBundledFont(ref) {
			// A custom loader need not carry the bundled fonts.
			return r.embedded.LoadFont(ref)
		}
		return data, err
	}
	return os.ReadFile(ref) // #nosec G304 -- user-provided font path
}

// familyName reads the family from the font name table.
func familyName(f *opentype.Font, ref string) string {
	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil || name == "" {
		return filepath.Base(ref)
	}
	return name
}

func isBundledSet(refs []string) bool {
	for _, ref := range refs {
		if !assets.IsBundledFont(ref) {
			return false
		}
	}
	return len(refs) == len(assets.DefaultFontNames)
}
