package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sourceFlags holds flags controlling how inputs are read and lexed.
type sourceFlags struct {
	language string
	stripAll bool
	markdown bool
}

// fontFlags holds font selection flags.
type fontFlags struct {
	name  string
	paths []string
	size  int
}

// layoutFlags holds spacing flags, in pixels.
type layoutFlags struct {
	margin      int
	padding     int
	lineSpacing int
}

// lineNumberFlags holds line-number gutter flags.
type lineNumberFlags struct {
	show        bool
	bold        bool
	italic      bool
	separator   bool
	padding     int
	highlighted []int
}

// colorFlags holds #RRGGBB color flags.
type colorFlags struct {
	lineNumbersBackground string
	lineNumbers           string
	highlight             string
	pictureBackground     string
	codeBackground        string
}

// outputFlags holds output destination flags.
type outputFlags struct {
	names   []string
	workers int
}

// assetFlags holds theme and asset flags.
type assetFlags struct {
	style     string
	assetPath string
}

// infoFlags holds flags that print information and skip rendering.
type infoFlags struct {
	version       bool
	listLanguages bool
	listStyles    bool
}

// renderFlags holds all flags of the render command.
type renderFlags struct {
	common      commonFlags
	source      sourceFlags
	font        fontFlags
	layout      layoutFlags
	lineNumbers lineNumberFlags
	colors      colorFlags
	output      outputFlags
	assets      assetFlags
	info        infoFlags

	fs *flag.FlagSet
}

// changed reports whether the flag was set on the command line.
func (f *renderFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSourceFlags adds source flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVarP(&f.language, "language", "l", "", "lexer name or alias (default: guessed)")
	fs.BoolVar(&f.stripAll, "strip-all", false, "trim leading and trailing whitespace")
	fs.BoolVar(&f.markdown, "markdown", false, "render each fenced code block of Markdown inputs")
}

// addFontFlags adds font flags to a FlagSet.
func addFontFlags(fs *flag.FlagSet, f *fontFlags) {
	fs.StringVar(&f.name, "font-name", "", "installed font family")
	fs.StringSliceVar(&f.paths, "font-paths", nil, "regular,italic,bold,bold-italic font files")
	fs.IntVar(&f.size, "font-size", 0, "font size in pixels (default 14)")
}

// addLayoutFlags adds layout flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.IntVar(&f.margin, "margin", 0, "margin around the code block (default 30)")
	fs.IntVar(&f.padding, "padding", 0, "padding inside the code block (default 10)")
	fs.IntVar(&f.lineSpacing, "space-between-lines", 0, "extra pixels between lines (default 5)")
}

// addLineNumberFlags adds line-number flags to a FlagSet.
func addLineNumberFlags(fs *flag.FlagSet, f *lineNumberFlags) {
	fs.BoolVar(&f.show, "show-line-numbers", false, "show line numbers")
	fs.BoolVar(&f.bold, "show-line-numbers-bold", false, "bold line numbers")
	fs.BoolVar(&f.italic, "show-line-numbers-italic", false, "italic line numbers")
	fs.BoolVar(&f.separator, "show-line-numbers-separator", false, "separator between line numbers and code")
	fs.IntVar(&f.padding, "line-numbers-padding", 0, "horizontal gutter padding (default 10)")
	fs.IntSliceVar(&f.highlighted, "lines-highlighted", nil, "1-based lines to highlight")
}

// addColorFlags adds color flags to a FlagSet.
func addColorFlags(fs *flag.FlagSet, f *colorFlags) {
	fs.StringVar(&f.lineNumbersBackground, "line-numbers-background-color", "", "gutter background (default #151718)")
	fs.StringVar(&f.lineNumbers, "line-numbers-color", "", "line number color (default #6D8A88)")
	fs.StringVar(&f.highlight, "highlight-color", "", "highlighted line color (default #F7F0AB)")
	fs.StringVar(&f.pictureBackground, "picture-background-color", "", "margin color (default #A5B2BD)")
	fs.StringVar(&f.codeBackground, "code-background-color", "", "code background (default #151718)")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringSliceVarP(&f.names, "output", "o", nil, "output files, in input order")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "chroma style name or XML file (default monokai)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addInfoFlags adds informational flags to a FlagSet.
func addInfoFlags(fs *flag.FlagSet, f *infoFlags) {
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVar(&f.listLanguages, "list-languages", false, "list lexer names and exit")
	fs.BoolVar(&f.listStyles, "list-styles", false, "list style names and exit")
}

// buildRenderFlagSet creates the render FlagSet bound to f.
// Shared by parseRenderFlags and shell completion.
func buildRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("picode", flag.ContinueOnError)
	fs.SortFlags = false

	addOutputFlags(fs, &f.output)
	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addFontFlags(fs, &f.font)
	addLayoutFlags(fs, &f.layout)
	addLineNumberFlags(fs, &f.lineNumbers)
	addColorFlags(fs, &f.colors)
	addAssetFlags(fs, &f.assets)
	addInfoFlags(fs, &f.info)

	return fs
}

// parseRenderFlags parses render flags and returns positional args.
// Nothing is printed: the caller reports parse errors and flag.ErrHelp.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := buildRenderFlagSet(f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.fs = fs
	return f, fs.Args(), nil
}
