// Package picode renders source code into images.
//
// # Quick Start
//
// Render a snippet and save it as PNG:
//
//	result, err := picode.Render(ctx, picode.Input{
//	    Code:     `print("hi")`,
//	    Language: "python",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := result.Save("hi.png"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Rendering Pipeline
//
// Each call goes through these stages:
//
//  1. Input validation and defaulting (Input.Resolve)
//  2. Lexer resolution: explicit language, file name, then content (chroma)
//  3. Style resolution: XML file, asset directory, then chroma registry
//  4. Font resolution: installed family, explicit files, or bundled Go Mono
//  5. Painting on a fixed character grid (golang.org/x/image/font)
//  6. Compositing onto a margin filled with the picture background
//
// # Configuration
//
// Per-render options are passed via Input. Nil sub-structs take defaults:
//
//	result, err := r.Render(ctx, picode.Input{
//	    FilePath:       "main.go",
//	    Style:          "dracula",
//	    Layout:         &picode.Layout{FontSize: 18, Margin: 20, Padding: 10, LineSpacing: 4},
//	    LineNumbers:    &picode.LineNumbers{Show: true, Separator: true, Padding: 10},
//	    Colors:         &picode.Colors{PictureBackground: "#FFFFFF"},
//	    HighlightLines: []int{3, 4},
//	})
//
// Renderer-wide options use functional options:
//
//	r, err := picode.NewRenderer(
//	    picode.WithWarningWriter(io.Discard),
//	    picode.WithAssetPath("/path/to/assets"),
//	)
//
// # Errors
//
// Invalid input fails with an *Error carrying a stable numeric code
// (100 to 105). Compare with the Err* sentinels using errors.Is, or read
// the code with errors.As or CodeOf. An unknown style or font is not an
// error: the default is used and a warning is recorded in Result.Warnings.
//
// # Custom Assets
//
// Fonts and styles can be loaded from a directory:
//
//	assets/
//	├── fonts/
//	│   └── Hack-Regular.ttf
//	└── styles/
//	    └── night.xml
//
// Missing assets fall back to the bundled ones.
package picode
