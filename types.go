package picode

import (
	"slices"
	"strings"

	"github.com/alnah/go-picode/internal/assets"
)

// Default option values.
const (
	DefaultFontSize           = 14
	DefaultMargin             = 30
	DefaultPadding            = 10
	DefaultLineSpacing        = 5
	DefaultLineNumbersPadding = 10
	DefaultStyle              = "monokai"

	DefaultCodeBackgroundColor        = "#151718"
	DefaultPictureBackgroundColor     = "#A5B2BD"
	DefaultLineNumbersColor           = "#6D8A88"
	DefaultLineNumbersBackgroundColor = "#151718"
	DefaultHighlightColor             = "#F7F0AB"
)

// Input contains render parameters.
//
// Exactly one of Code and FilePath must be set. FontName and FontPaths are
// mutually exclusive; when neither is set the bundled Go Mono fonts are used.
// Nil sub-structs take their defaults.
type Input struct {
	Code     string // Inline source code
	FilePath string // Path to a source file
	Language string // Lexer name or alias (empty = guess)

	FontName  string   // Installed font family
	FontPaths []string // Regular, italic, bold, bold-italic font files

	Layout      *Layout      // nil = DefaultLayout()
	LineNumbers *LineNumbers // nil = DefaultLineNumbers()
	Colors      *Colors      // nil or empty fields = defaults

	HighlightLines []int  // 1-based line numbers to highlight
	StripAll       bool   // Trim leading/trailing whitespace before lexing
	Style          string // Chroma style name or path to an XML style (empty = monokai)
}

// Layout configures sizes in pixels.
// A non-nil Layout is used as is: start from DefaultLayout() to change a
// single field.
type Layout struct {
	FontSize    int
	Margin      int // Around the code block, filled with the picture background
	Padding     int // Inside the code block
	LineSpacing int // Between lines
}

// DefaultLayout returns the default layout.
func DefaultLayout() *Layout {
	return &Layout{
		FontSize:    DefaultFontSize,
		Margin:      DefaultMargin,
		Padding:     DefaultPadding,
		LineSpacing: DefaultLineSpacing,
	}
}

// LineNumbers configures the line-number gutter.
type LineNumbers struct {
	Show      bool
	Bold      bool
	Italic    bool
	Separator bool // 1px vertical line between gutter and code
	Padding   int  // Horizontal padding of the gutter
}

// DefaultLineNumbers returns the default gutter settings (hidden).
func DefaultLineNumbers() *LineNumbers {
	return &LineNumbers{Padding: DefaultLineNumbersPadding}
}

// Colors holds #RRGGBB colors. Empty fields take the defaults.
type Colors struct {
	LineNumbersBackground string
	LineNumbers           string
	Highlight             string
	PictureBackground     string
	CodeBackground        string
}

// DefaultColors returns the default colors.
func DefaultColors() *Colors {
	return &Colors{
		LineNumbersBackground: DefaultLineNumbersBackgroundColor,
		LineNumbers:           DefaultLineNumbersColor,
		Highlight:             DefaultHighlightColor,
		PictureBackground:     DefaultPictureBackgroundColor,
		CodeBackground:        DefaultCodeBackgroundColor,
	}
}

// ResolvedInput is an Input after defaulting and validation: every field
// holds a concrete value.
type ResolvedInput struct {
	Code     string
	FilePath string
	Language string

	FontName  string
	FontPaths []string

	Layout      Layout
	LineNumbers LineNumbers
	Colors      Colors

	HighlightLines []int // sorted, unique
	StripAll       bool
	Style          string
}

// Resolve validates the input and fills defaults. Rules are checked in a
// fixed order and the first failing one is returned as an *Error:
// source, font selection, font size, then colors.
func (in Input) Resolve() (*ResolvedInput, error) {
	hasCode := in.Code != ""
	hasFile := in.FilePath != ""
	switch {
	case !hasCode && !hasFile:
		return nil, ErrMissingSource
	case hasCode && hasFile:
		return nil, ErrConflictingSource
	}

	if in.FontName != "" && len(in.FontPaths) > 0 {
		return nil, ErrConflictingFontSpec
	}
	fontPaths := slices.Clone(in.FontPaths)
	if in.FontName == "" && len(fontPaths) == 0 {
		fontPaths = slices.Clone(assets.DefaultFontNames[:])
	}

	layout := *DefaultLayout()
	if in.Layout != nil {
		layout = *in.Layout
	}
	if layout.FontSize < 1 {
		return nil, ErrInvalidFontSize
	}

	colors := in.Colors.withDefaults()
	for _, c := range colors.inCheckOrder() {
		if !IsHexColor(c) {
			return nil, newError(KindInvalidColor, "%s is not a valid hexadecimal color.", c)
		}
	}

	lineNumbers := *DefaultLineNumbers()
	if in.LineNumbers != nil {
		lineNumbers = *in.LineNumbers
	}

	// Negative spacing has no meaning for a bitmap.
	layout.Margin = max(layout.Margin, 0)
	layout.Padding = max(layout.Padding, 0)
	layout.LineSpacing = max(layout.LineSpacing, 0)
	lineNumbers.Padding = max(lineNumbers.Padding, 0)

	style := strings.TrimSpace(in.Style)
	if style == "" {
		style = DefaultStyle
	}

	return &ResolvedInput{
		Code:           in.Code,
		FilePath:       in.FilePath,
		Language:       strings.TrimSpace(in.Language),
		FontName:       in.FontName,
		FontPaths:      fontPaths,
		Layout:         layout,
		LineNumbers:    lineNumbers,
		Colors:         colors,
		HighlightLines: uniqueSorted(in.HighlightLines),
		StripAll:       in.StripAll,
		Style:          style,
	}, nil
}

// withDefaults returns a copy with empty fields set to defaults.
func (c *Colors) withDefaults() Colors {
	out := *DefaultColors()
	if c == nil {
		return out
	}
	if c.LineNumbersBackground != "" {
		out.LineNumbersBackground = c.LineNumbersBackground
	}
	if c.LineNumbers != "" {
		out.LineNumbers = c.LineNumbers
	}
	if c.Highlight != "" {
		out.Highlight = c.Highlight
	}
	if c.PictureBackground != "" {
		out.PictureBackground = c.PictureBackground
	}
	if c.CodeBackground != "" {
		out.CodeBackground = c.CodeBackground
	}
	return out
}

// inCheckOrder lists the colors in validation order.
func (c Colors) inCheckOrder() []string {
	return []string{
		c.LineNumbersBackground,
		c.LineNumbers,
		c.Highlight,
		c.PictureBackground,
		c.CodeBackground,
	}
}

// uniqueSorted returns the positive values of lines, sorted, without duplicates.
func uniqueSorted(lines []int) []int {
	out := make([]int, 0, len(lines))
	for _, l := range lines {
		if l > 0 {
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
