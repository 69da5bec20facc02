package picode

import (
	"image"
	"image/color"
	"strconv"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// defaultForeground is used when a style defines no text color.
var defaultForeground = color.RGBA{A: 0xff}

// glyph is one rune placed on the character grid.
type glyph struct {
	line, col    int
	r            rune
	fg           color.RGBA
	bold, italic bool
}

// grid is the result of laying tokens out on fixed-size character cells.
type grid struct {
	glyphs []glyph
	lines  int // number of lines, at least 1
	cols   int // width of the longest line
}

// layoutTokens places every rune of tokens on the grid. Tabs advance to
// the next tabWidth stop; whitespace occupies cells but is not drawn.
func layoutTokens(tokens []chroma.Token, style *chroma.Style) grid {
	var g grid
	line, col := 0, 0

	for _, tok := range tokens {
		entry := style.Get(tok.Type)
		fg := defaultForeground
		if entry.Colour.IsSet() {
			fg = color.RGBA{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue(), A: 0xff}
		}
		bold := entry.Bold == chroma.Yes
		italic := entry.Italic == chroma.Yes

		for _, r := range tok.Value {
			switch {
			case r == '\n':
				line++
				col = 0
				continue
			case r == '\t':
				col += tabWidth - col%tabWidth
			case unicode.IsSpace(r):
				col++
			default:
				g.glyphs = append(g.glyphs, glyph{line: line, col: col, r: r, fg: fg, bold: bold, italic: italic})
				col++
			}
			g.cols = max(g.cols, col)
		}
	}

	g.lines = line
	if col > 0 {
		g.lines++
	}
	g.lines = max(g.lines, 1)
	return g
}

// digitCount returns the number of decimal digits of n (n >= 0).
func digitCount(n int) int {
	return len(strconv.Itoa(max(n, 0)))
}

// highlighter paints a grid onto the code sub-image.
type highlighter struct {
	fonts       *fontSet
	layout      Layout
	lineNumbers LineNumbers
	gutterChars int
	highlights  []int

	codeBg      color.RGBA
	gutterBg    color.RGBA
	gutterFg    color.RGBA
	highlightBg color.RGBA
}

// newHighlighter prepares a highlighter. newlines is the number of newline
// characters of the source, which sizes the gutter.
func newHighlighter(in *ResolvedInput, fonts *fontSet, newlines int) *highlighter {
	return &highlighter{
		fonts:       fonts,
		layout:      in.Layout,
		lineNumbers: in.LineNumbers,
		gutterChars: digitCount(newlines),
		highlights:  in.HighlightLines,
		codeBg:      rgba(in.Colors.CodeBackground),
		gutterBg:    rgba(in.Colors.LineNumbersBackground),
		gutterFg:    rgba(in.Colors.LineNumbers),
		highlightBg: rgba(in.Colors.Highlight),
	}
}

// gutterWidth is the width of the line-number column, 0 when hidden.
func (h *highlighter) gutterWidth() int {
	if !h.lineNumbers.Show {
		return 0
	}
	return h.gutterChars*h.fonts.cellW + 2*h.lineNumbers.Padding
}

func (h *highlighter) lineHeight() int {
	return h.fonts.cellH + h.layout.LineSpacing
}

// lineY is the top of the 0-based line.
func (h *highlighter) lineY(line int) int {
	return h.layout.Padding + line*h.lineHeight()
}

// size returns the sub-image dimensions for g.
func (h *highlighter) size(g grid) image.Point {
	pad := h.layout.Padding
	return image.Point{
		X: h.gutterWidth() + 2*pad + g.cols*h.fonts.cellW,
		Y: 2*pad + g.lines*h.lineHeight(),
	}
}

// render paints g and returns the code sub-image.
func (h *highlighter) render(g grid) *image.RGBA {
	size := h.size(g)
	img := image.NewRGBA(image.Rectangle{Max: size})
	fill(img, img.Bounds(), h.codeBg)

	pad := h.layout.Padding
	gw := h.gutterWidth()
	sepX := pad + gw - h.lineNumbers.Padding

	if h.lineNumbers.Show {
		fill(img, image.Rect(0, 0, sepX, size.Y), h.gutterBg)
	}

	bandX := 0
	if h.lineNumbers.Show {
		bandX = sepX + 1
	}
	for _, n := range h.highlights {
		if n > g.lines {
			break
		}
		y := h.lineY(n - 1)
		fill(img, image.Rect(bandX, y, size.X, y+h.lineHeight()), h.highlightBg)
	}

	if h.lineNumbers.Show {
		if h.lineNumbers.Separator {
			fill(img, image.Rect(sepX, 0, sepX+1, size.Y), h.gutterFg)
		}
		h.drawLineNumbers(img, g.lines)
	}

	codeX := pad + gw
	d := &font.Drawer{Dst: img}
	for _, gl := range g.glyphs {
		d.Src = image.NewUniform(gl.fg)
		d.Face = h.fonts.face(gl.bold, gl.italic)
		h.drawRune(d, codeX+gl.col*h.fonts.cellW, h.lineY(gl.line), gl.r)
	}

	return img
}

// drawLineNumbers paints 1..lines right-justified in the gutter.
func (h *highlighter) drawLineNumbers(img *image.RGBA, lines int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(h.gutterFg),
		Face: h.fonts.face(h.lineNumbers.Bold, h.lineNumbers.Italic),
	}
	pad := h.layout.Padding
	for i := 1; i <= lines; i++ {
		s := strconv.Itoa(i)
		x := pad + max(h.gutterChars-len(s), 0)*h.fonts.cellW
		for j, r := range s {
			h.drawRune(d, x+j*h.fonts.cellW, h.lineY(i-1), r)
		}
	}
}

// drawRune draws r in the cell whose top-left corner is (x, y).
func (h *highlighter) drawRune(d *font.Drawer, x, y int, r rune) {
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + h.fonts.ascent}
	d.DrawString(string(r))
}

// fill paints rect with c.
func fill(img draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// composite centers sub on a canvas with margin pixels of bg on each side.
func composite(sub *image.RGBA, margin int, bg color.RGBA) *image.RGBA {
	b := sub.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, 2*margin+b.Dx(), 2*margin+b.Dy()))
	fill(canvas, canvas.Bounds(), bg)
	draw.Draw(canvas, b.Add(image.Pt(margin, margin)), sub, b.Min, draw.Src)
	return canvas
}
