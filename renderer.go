package picode

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-picode/internal/assets"
	"github.com/alnah/go-picode/internal/fontsys"
)

// Renderer turns source code into images.
// Create with NewRenderer(). A Renderer is safe for concurrent use; every
// Render call opens and closes its own fonts. Installed fonts are scanned
// once per Renderer.
type Renderer struct {
	cfg       rendererConfig
	assets    assets.AssetLoader
	embedded  *assets.EmbeddedLoader
	fontIndex *fontsys.Index // scanned on the first FontName lookup
	warnings  io.Writer
}

// rendererConfig holds options applied before the asset loader is built.
type rendererConfig struct {
	assetPath   string
	assetLoader AssetLoader
	fontDirs    []string
	fontDirsSet bool
	warnings    io.Writer
}

// Option configures a Renderer.
type Option func(*rendererConfig)

// WithWarningWriter sets where non-fatal warnings are written, one
// "warning: " line each. Defaults to os.Stderr; pass io.Discard to silence.
func WithWarningWriter(w io.Writer) Option {
	return func(c *rendererConfig) {
		c.warnings = w
	}
}

// WithAssetPath loads fonts and styles from dir, falling back to the
// bundled assets. See NewAssetLoader for the directory layout.
func WithAssetPath(dir string) Option {
	return func(c *rendererConfig) {
		c.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *rendererConfig) {
		c.assetLoader = loader
	}
}

// WithFontDirs sets the directories searched for installed fonts by
// Input.FontName. Defaults to the platform font directories.
func WithFontDirs(dirs ...string) Option {
	return func(c *rendererConfig) {
		c.fontDirs = dirs
		c.fontDirsSet = true
	}
}

// NewRenderer creates a Renderer.
// Returns ErrInvalidAssetPath if WithAssetPath names an unusable directory.
func NewRenderer(opts ...Option) (*Renderer, error) {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Renderer{
		cfg:      cfg,
		assets:   assets.NewEmbeddedLoader(),
		embedded: assets.NewEmbeddedLoader(),
		warnings: cfg.warnings,
	}
	if r.warnings == nil {
		r.warnings = os.Stderr
	}
	fontDirs := cfg.fontDirs
	if !cfg.fontDirsSet {
		fontDirs = fontsys.DefaultDirs()
	}
	r.fontIndex = fontsys.NewIndex(fontDirs)

	switch {
	case cfg.assetLoader != nil:
		r.assets = cfg.assetLoader
	case cfg.assetPath != "":
		resolver, err := assets.NewAssetResolver(cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		r.assets = resolver
	}

	return r, nil
}

// Render validates in, then lexes, paints and composites the code.
// The context is checked between stages. Recovers from internal panics
// to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, in Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := in.Resolve()
	if err != nil {
		return nil, err
	}

	code, err := cfg.source()
	if err != nil {
		return nil, err
	}

	lexer, err := resolveLexer(cfg, code)
	if err != nil {
		return nil, err
	}

	w := &warner{out: r.warnings}
	style := r.resolveStyle(cfg.Style, w)

	fonts, err := r.openFonts(cfg, w)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fonts.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens, err := tokenize(lexer, prepareCode(code, cfg.StripAll))
	if err != nil {
		return nil, err
	}

	h := newHighlighter(cfg, fonts, strings.Count(code, "\n"))
	sub := h.render(layoutTokens(tokens, style))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Image:    composite(sub, cfg.Layout.Margin, rgba(cfg.Colors.PictureBackground)),
		Lexer:    lexerName(lexer),
		Style:    style.Name,
		Font:     fonts.family,
		Warnings: w.messages,
	}, nil
}

// source returns the code to render, reading FilePath when set.
func (in *ResolvedInput) source() (string, error) {
	if in.FilePath == "" {
		return in.Code, nil
	}
	data, err := os.ReadFile(in.FilePath) // #nosec G304 -- user-provided source path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	return string(data), nil
}

// Render renders in with a default Renderer, which writes warnings to
// os.Stderr.
func Render(ctx context.Context, in Input) (*Result, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, in)
}

// warner records non-fatal warnings and echoes them to out.
type warner struct {
	out      io.Writer
	messages []string
}

func (w *warner) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.messages = append(w.messages, msg)
	fmt.Fprintf(w.out, "warning: %s\n", msg)
}
