package picode

// Notes:
// - Geometry tests open the bundled fonts so cell sizes are real.
// - Pixel samples are taken only from padding or band areas where no glyph is drawn.

import (
	"image"
	"image/color"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-picode/internal/assets"
)

func openBundled(t *testing.T, size int) *fontSet {
	t.Helper()
	set, err := newTestRenderer(t).openFaces(assets.DefaultFontNames[:], size)
	if err != nil {
		t.Fatalf("openFaces() error = %v", err)
	}
	t.Cleanup(func() { _ = set.Close() })
	return set
}

// ---------------------------------------------------------------------------
// TestDigitCount - Gutter sizing
// ---------------------------------------------------------------------------

func TestDigitCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{99, 2},
		{100, 3},
		{12345, 5},
	}

	for _, tt := range tests {
		if got := digitCount(tt.n); got != tt.want {
			t.Errorf("digitCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLayoutTokens - Character grid placement
// ---------------------------------------------------------------------------

func TestLayoutTokens(t *testing.T) {
	t.Parallel()

	tokens := []chroma.Token{
		{Type: chroma.Text, Value: "a\tb\n"},
		{Type: chroma.Keyword, Value: "cd"},
		{Type: chroma.Text, Value: " \n"},
	}

	g := layoutTokens(tokens, styles.Get("monokai"))

	if g.lines != 2 {
		t.Errorf("lines = %d, want 2", g.lines)
	}
	if g.cols != 5 {
		t.Errorf("cols = %d, want 5 (tab expands to column 4)", g.cols)
	}

	want := []struct {
		line, col int
		r         rune
	}{
		{0, 0, 'a'},
		{0, 4, 'b'},
		{1, 0, 'c'},
		{1, 1, 'd'},
	}
	if len(g.glyphs) != len(want) {
		t.Fatalf("glyphs = %+v, want %d", g.glyphs, len(want))
	}
	for i, w := range want {
		gl := g.glyphs[i]
		if gl.line != w.line || gl.col != w.col || gl.r != w.r {
			t.Errorf("glyph %d = (%d,%d,%q), want (%d,%d,%q)", i, gl.line, gl.col, gl.r, w.line, w.col, w.r)
		}
	}
}

func TestLayoutTokens_Empty(t *testing.T) {
	t.Parallel()

	g := layoutTokens(nil, styles.Get("monokai"))
	if g.lines != 1 || g.cols != 0 || len(g.glyphs) != 0 {
		t.Errorf("layoutTokens(nil) = %+v, want one empty line", g)
	}
}

func TestLayoutTokens_UnterminatedLastLine(t *testing.T) {
	t.Parallel()

	g := layoutTokens([]chroma.Token{{Type: chroma.Text, Value: "a\nb"}}, styles.Get("monokai"))
	if g.lines != 2 {
		t.Errorf("lines = %d, want 2", g.lines)
	}
}

// ---------------------------------------------------------------------------
// TestHighlighter - Gutter, bands and separator
// ---------------------------------------------------------------------------

func TestHighlighter_Size(t *testing.T) {
	t.Parallel()

	fonts := openBundled(t, 14)
	in, err := Input{Code: "x", LineNumbers: &LineNumbers{Show: true, Padding: 6}}.Resolve()
	if err != nil {
		t.Fatal(err)
	}

	h := newHighlighter(in, fonts, 120) // 3 gutter digits
	if got, want := h.gutterWidth(), 3*fonts.cellW+12; got != want {
		t.Errorf("gutterWidth() = %d, want %d", got, want)
	}

	size := h.size(grid{lines: 4, cols: 10})
	wantW := h.gutterWidth() + 2*DefaultPadding + 10*fonts.cellW
	wantH := 2*DefaultPadding + 4*(fonts.cellH+DefaultLineSpacing)
	if size.X != wantW || size.Y != wantH {
		t.Errorf("size = %v, want (%d,%d)", size, wantW, wantH)
	}

	in.LineNumbers.Show = false
	if got := newHighlighter(in, fonts, 120).gutterWidth(); got != 0 {
		t.Errorf("hidden gutterWidth() = %d, want 0", got)
	}
}

func TestHighlighter_Render(t *testing.T) {
	t.Parallel()

	fonts := openBundled(t, 14)
	in, err := Input{
		Code:           "x",
		LineNumbers:    &LineNumbers{Show: true, Separator: true, Padding: 4},
		HighlightLines: []int{2, 9},
		Colors: &Colors{
			LineNumbersBackground: "#010203",
			LineNumbers:           "#0A0B0C",
			Highlight:             "#F0E0D0",
			CodeBackground:        "#202122",
		},
	}.Resolve()
	if err != nil {
		t.Fatal(err)
	}

	tokens := []chroma.Token{{Type: chroma.Text, Value: "one\ntwo\nthree\n"}}
	h := newHighlighter(in, fonts, 3)
	g := layoutTokens(tokens, styles.Get("monokai"))
	img := h.render(g)

	size := h.size(g)
	if img.Bounds().Size() != size {
		t.Fatalf("bounds = %v, want %v", img.Bounds().Size(), size)
	}

	sepX := DefaultPadding + h.gutterWidth() - 4

	samples := []struct {
		name string
		at   image.Point
		want color.RGBA
	}{
		{"code background in top padding", image.Pt(size.X-1, 0), color.RGBA{0x20, 0x21, 0x22, 0xff}},
		{"gutter background", image.Pt(1, 0), color.RGBA{0x01, 0x02, 0x03, 0xff}},
		{"separator", image.Pt(sepX, 0), color.RGBA{0x0a, 0x0b, 0x0c, 0xff}},
		{"highlight band on line 2", image.Pt(size.X-1, h.lineY(1)+1), color.RGBA{0xf0, 0xe0, 0xd0, 0xff}},
		{"line 1 not highlighted", image.Pt(size.X-1, h.lineY(0)+1), color.RGBA{0x20, 0x21, 0x22, 0xff}},
	}

	for _, p := range samples {
		if got := img.RGBAAt(p.at.X, p.at.Y); got != p.want {
			t.Errorf("%s at %v = %v, want %v", p.name, p.at, got, p.want)
		}
	}
}

func TestComposite(t *testing.T) {
	t.Parallel()

	red := color.RGBA{R: 0xff, A: 0xff}
	bg := color.RGBA{B: 0xff, A: 0xff}

	sub := image.NewRGBA(image.Rect(0, 0, 10, 5))
	fill(sub, sub.Bounds(), red)

	canvas := composite(sub, 3, bg)

	if got := canvas.Bounds().Size(); got != image.Pt(16, 11) {
		t.Fatalf("size = %v, want (16,11)", got)
	}
	samples := []struct {
		at   image.Point
		want color.RGBA
	}{
		{image.Pt(0, 0), bg},
		{image.Pt(2, 2), bg},
		{image.Pt(3, 3), red},
		{image.Pt(12, 7), red},
		{image.Pt(13, 8), bg},
	}
	for _, p := range samples {
		if got := canvas.RGBAAt(p.at.X, p.at.Y); got != p.want {
			t.Errorf("pixel %v = %v, want %v", p.at, got, p.want)
		}
	}
}
