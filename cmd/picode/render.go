package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-picode"
	"github.com/alnah/go-picode/internal/config"
	"github.com/alnah/go-picode/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrTooManyOutputs = errors.New("more output names than inputs")
	ErrReadInput      = errors.New("failed to read input file")
	ErrWriteImage     = errors.New("failed to write image")
)

// runRender renders every input and saves the images in input order.
// The first failure stops the batch.
func runRender(ctx context.Context, inputs []string, flags *renderFlags, env *Environment) error {
	if flags.info.listLanguages {
		printList(env, picode.Languages())
		return nil
	}
	if flags.info.listStyles {
		printList(env, picode.Styles())
		return nil
	}

	if len(inputs) == 0 {
		fmt.Fprintln(env.Stdout, "No input files given. Run 'picode --help' for usage.")
		return nil
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	applyConfigFlags(flags, cfg)

	workers, err := resolveWorkers(cfg.Workers)
	if err != nil {
		return err
	}

	template := inputFromConfig(cfg)
	applyFlags(flags, &template)

	jobs, err := discoverJobs(ctx, inputs, flags.output.names, cfg.Output.DefaultDir, flags.source.markdown)
	if err != nil {
		return err
	}
	for i := range jobs {
		jobs[i].Input = jobs[i].apply(template)
	}

	renderer, err := newRenderer(cfg, env)
	if err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendering %d image(s) with %d worker(s)\n", len(jobs), workers)
	}

	start := env.Now()
	results, err := renderBatch(ctx, renderer, jobs, workers)
	printResults(results, flags.common.quiet, flags.common.verbose, env)
	if err != nil {
		return err
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Done in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}

	printFallbackHints(results, template, env)
	return nil
}

// printList writes one name per line.
func printList(env *Environment, names []string) {
	for _, n := range names {
		fmt.Fprintln(env.Stdout, n)
	}
}

// loadConfig loads the config named by --config, then PICODE_CONFIG, and
// returns env.Config (or an empty config) when neither is set.
func loadConfig(name string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		if env.Config != nil {
			cfg := *env.Config
			return &cfg, nil
		}
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyConfigFlags merges the flags that live in the config but not in
// picode.Input. CLI values override config values.
func applyConfigFlags(flags *renderFlags, cfg *config.Config) {
	if flags.changed("asset-path") {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.changed("workers") {
		cfg.Workers = flags.output.workers
	}
}

// resolveWorkers validates the worker count and resolves 0 to auto.
func resolveWorkers(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return 0, fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return resolvePoolSize(n), nil
}

// inputFromConfig builds the render template from config values.
// Unset config values keep the library defaults; spacings set to 0 stay 0.
func inputFromConfig(cfg *config.Config) picode.Input {
	in := picode.Input{
		Language:  cfg.Language,
		FontName:  cfg.Font.Name,
		FontPaths: slices.Clone(cfg.Font.Paths),
		StripAll:  cfg.StripAll,
		Style:     cfg.Style,
	}

	layout := picode.DefaultLayout()
	setIfNonZero(&layout.FontSize, cfg.Font.Size)
	setIfPresent(&layout.Margin, cfg.Layout.Margin)
	setIfPresent(&layout.Padding, cfg.Layout.Padding)
	setIfPresent(&layout.LineSpacing, cfg.Layout.LineSpacing)
	in.Layout = layout

	ln := picode.DefaultLineNumbers()
	ln.Show = cfg.LineNumbers.Show
	ln.Bold = cfg.LineNumbers.Bold
	ln.Italic = cfg.LineNumbers.Italic
	ln.Separator = cfg.LineNumbers.Separator
	setIfPresent(&ln.Padding, cfg.LineNumbers.Padding)
	in.LineNumbers = ln

	in.Colors = &picode.Colors{
		LineNumbersBackground: cfg.Colors.LineNumbersBackground,
		LineNumbers:           cfg.Colors.LineNumbers,
		Highlight:             cfg.Colors.Highlight,
		PictureBackground:     cfg.Colors.PictureBackground,
		CodeBackground:        cfg.Colors.CodeBackground,
	}

	return in
}

// applyFlags overrides template fields with flags set on the command line.
// Values are passed through unvalidated so picode reports typed errors.
func applyFlags(f *renderFlags, in *picode.Input) {
	if f.changed("language") {
		in.Language = f.source.language
	}
	if f.changed("strip-all") {
		in.StripAll = f.source.stripAll
	}
	if f.changed("style") {
		in.Style = f.assets.style
	}

	// A font flag replaces the whole font selection of lower layers
	if f.changed("font-name") {
		in.FontName = f.font.name
		if !f.changed("font-paths") {
			in.FontPaths = nil
		}
	}
	if f.changed("font-paths") {
		in.FontPaths = f.font.paths
		if !f.changed("font-name") {
			in.FontName = ""
		}
	}

	if f.changed("font-size") {
		in.Layout.FontSize = f.font.size
	}
	if f.changed("margin") {
		in.Layout.Margin = f.layout.margin
	}
	if f.changed("padding") {
		in.Layout.Padding = f.layout.padding
	}
	if f.changed("space-between-lines") {
		in.Layout.LineSpacing = f.layout.lineSpacing
	}

	if f.changed("show-line-numbers") {
		in.LineNumbers.Show = f.lineNumbers.show
	}
	if f.changed("show-line-numbers-bold") {
		in.LineNumbers.Bold = f.lineNumbers.bold
	}
	if f.changed("show-line-numbers-italic") {
		in.LineNumbers.Italic = f.lineNumbers.italic
	}
	if f.changed("show-line-numbers-separator") {
		in.LineNumbers.Separator = f.lineNumbers.separator
	}
	if f.changed("line-numbers-padding") {
		in.LineNumbers.Padding = f.lineNumbers.padding
	}
	if f.changed("lines-highlighted") {
		in.HighlightLines = f.lineNumbers.highlighted
	}

	if f.changed("line-numbers-background-color") {
		in.Colors.LineNumbersBackground = f.colors.lineNumbersBackground
	}
	if f.changed("line-numbers-color") {
		in.Colors.LineNumbers = f.colors.lineNumbers
	}
	if f.changed("highlight-color") {
		in.Colors.Highlight = f.colors.highlight
	}
	if f.changed("picture-background-color") {
		in.Colors.PictureBackground = f.colors.pictureBackground
	}
	if f.changed("code-background-color") {
		in.Colors.CodeBackground = f.colors.codeBackground
	}
}

func setIfNonZero(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setIfPresent(dst, v *int) {
	if v != nil {
		*dst = *v
	}
}

// newRenderer builds the renderer shared by every job of the batch.
func newRenderer(cfg *config.Config, env *Environment) (*picode.Renderer, error) {
	opts := []picode.Option{picode.WithWarningWriter(env.Stderr)}

	switch {
	case cfg.Assets.BasePath != "":
		opts = append(opts, picode.WithAssetPath(cfg.Assets.BasePath))
	case env.AssetLoader != nil:
		opts = append(opts, picode.WithAssetLoader(env.AssetLoader))
	}
	if env.FontDirs != nil {
		opts = append(opts, picode.WithFontDirs(env.FontDirs...))
	}

	r, err := picode.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("asset path %q: %w", cfg.Assets.BasePath, err)
	}
	return r, nil
}

// printFallbackHints prints hints once when a requested style or font
// family was replaced by a fallback.
func printFallbackHints(results []renderResult, in picode.Input, env *Environment) {
	var styleMissed, fontMissed bool
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		// Every style fallback lands on the default style
		if in.Style != "" && !strings.EqualFold(in.Style, picode.DefaultStyle) &&
			r.Result.Style == picode.DefaultStyle {
			styleMissed = true
		}
		if in.FontName != "" && !strings.EqualFold(r.Result.Font, in.FontName) {
			fontMissed = true
		}
	}

	if styleMissed {
		fmt.Fprintf(env.Stderr, "style %q unavailable%s\n", in.Style, hints.ForStyleNotFound(picode.Styles()))
	}
	if fontMissed {
		fmt.Fprintf(env.Stderr, "font %q unavailable%s\n", in.FontName, hints.ForFontNotFound())
	}
}

// reportError prints err the way its kind requires and returns the exit code.
// Typed render errors go to stdout as "Error n°<code>: <message>".
func reportError(err error, env *Environment) int {
	var perr *picode.Error
	if errors.As(err, &perr) {
		fmt.Fprintf(env.Stdout, "Error n°%d: %s\n", perr.Code(), perr.Message)
		switch perr.Kind {
		case picode.KindUnknownLanguage:
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForUnknownLanguage(), "\n"))
		case picode.KindInvalidColor:
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForInvalidColor(), "\n"))
		}
		return perr.Code()
	}

	if errors.Is(err, ErrWriteImage) {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hints.ForOutputDirectory())
	} else {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}
