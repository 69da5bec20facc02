package main

// Notes:
// - parseRenderFlags: we test list flags and Changed tracking.
// - inputFromConfig/applyFlags: we test the precedence chain
//   flags > config > library defaults, and that invalid flag values reach
//   picode untouched so it reports typed errors.
// - loadConfig: we test name lookup, PICODE_CONFIG fallback and env.Config.
// - resolveWorkers: we test bounds and auto sizing.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alnah/go-picode"
	"github.com/alnah/go-picode/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseRenderFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseRenderFlags([]string{
		"a.py", "-o", "x.png,y.png", "--font-paths", "r.ttf,i.ttf,b.ttf,bi.ttf",
		"--lines-highlighted", "3,1", "--lines-highlighted", "2", "b.py",
	})
	if err != nil {
		t.Fatalf("parseRenderFlags() error = %v", err)
	}

	if !slices.Equal(args, []string{"a.py", "b.py"}) {
		t.Errorf("args = %v, want [a.py b.py]", args)
	}
	if !slices.Equal(f.output.names, []string{"x.png", "y.png"}) {
		t.Errorf("output = %v, want [x.png y.png]", f.output.names)
	}
	if len(f.font.paths) != 4 {
		t.Errorf("font paths = %v, want 4 paths", f.font.paths)
	}
	if !slices.Equal(f.lineNumbers.highlighted, []int{3, 1, 2}) {
		t.Errorf("highlighted = %v, want [3 1 2]", f.lineNumbers.highlighted)
	}
	if !f.changed("font-paths") || f.changed("font-size") {
		t.Error("changed() should track only flags given on the command line")
	}
}

func TestParseRenderFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope"}},
		{"bad int", []string{"--font-size", "big"}},
		{"bad int list", []string{"--lines-highlighted", "1,x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := parseRenderFlags(tt.args); err == nil {
				t.Errorf("parseRenderFlags(%v) expected error", tt.args)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInputFromConfig - Config to render template
// ---------------------------------------------------------------------------

func TestInputFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty config keeps defaults", func(t *testing.T) {
		t.Parallel()

		in := inputFromConfig(config.DefaultConfig())

		if *in.Layout != *picode.DefaultLayout() {
			t.Errorf("Layout = %+v, want defaults", *in.Layout)
		}
		if *in.LineNumbers != *picode.DefaultLineNumbers() {
			t.Errorf("LineNumbers = %+v, want defaults", *in.LineNumbers)
		}
		if in.FontName != "" || len(in.FontPaths) != 0 || in.Style != "" {
			t.Errorf("font/style should be unset, got %q %v %q", in.FontName, in.FontPaths, in.Style)
		}
	})

	t.Run("config values applied", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Style:       "dracula",
			Font:        config.FontConfig{Size: 20},
			Layout:      config.LayoutConfig{Margin: config.Int(5)},
			LineNumbers: config.LineNumbersConfig{Show: true, Padding: config.Int(4)},
			Colors:      config.ColorsConfig{Highlight: "#112233"},
			StripAll:    true,
		}
		in := inputFromConfig(cfg)

		if in.Layout.FontSize != 20 || in.Layout.Margin != 5 || in.Layout.Padding != picode.DefaultPadding {
			t.Errorf("Layout = %+v, want size 20, margin 5, default padding", *in.Layout)
		}
		if !in.LineNumbers.Show || in.LineNumbers.Padding != 4 {
			t.Errorf("LineNumbers = %+v, want shown with padding 4", *in.LineNumbers)
		}
		if in.Colors.Highlight != "#112233" || in.Colors.CodeBackground != "" {
			t.Errorf("Colors = %+v, want only highlight set", *in.Colors)
		}
		if in.Style != "dracula" || !in.StripAll {
			t.Errorf("Style/StripAll = %q/%v, want dracula/true", in.Style, in.StripAll)
		}
	})

	t.Run("explicit zero spacing overrides defaults", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Layout: config.LayoutConfig{
				Margin:      config.Int(0),
				Padding:     config.Int(0),
				LineSpacing: config.Int(0),
			},
			LineNumbers: config.LineNumbersConfig{Padding: config.Int(0)},
		}
		in := inputFromConfig(cfg)

		if in.Layout.Margin != 0 || in.Layout.Padding != 0 || in.Layout.LineSpacing != 0 {
			t.Errorf("Layout = %+v, want zero margin, padding and line spacing", *in.Layout)
		}
		if in.LineNumbers.Padding != 0 {
			t.Errorf("LineNumbers.Padding = %d, want 0", in.LineNumbers.Padding)
		}
		if in.Layout.FontSize != picode.DefaultFontSize {
			t.Errorf("FontSize = %d, want default %d", in.Layout.FontSize, picode.DefaultFontSize)
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyFlags - Flags override config
// ---------------------------------------------------------------------------

func TestApplyFlags(t *testing.T) {
	t.Parallel()

	base := func() picode.Input {
		return inputFromConfig(&config.Config{
			Style:       "dracula",
			Language:    "python",
			Font:        config.FontConfig{Paths: []string{"a", "b", "c", "d"}, Size: 20},
			LineNumbers: config.LineNumbersConfig{Show: true},
		})
	}

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, in picode.Input)
	}{
		{
			name: "no flags keeps config",
			args: nil,
			check: func(t *testing.T, in picode.Input) {
				if in.Style != "dracula" || in.Language != "python" || in.Layout.FontSize != 20 {
					t.Errorf("input changed without flags: %+v", in)
				}
			},
		},
		{
			name: "font name replaces config paths",
			args: []string{"--font-name", "Fira Code"},
			check: func(t *testing.T, in picode.Input) {
				if in.FontName != "Fira Code" || in.FontPaths != nil {
					t.Errorf("font = %q %v, want name only", in.FontName, in.FontPaths)
				}
			},
		},
		{
			name: "explicit false overrides config true",
			args: []string{"--show-line-numbers=false"},
			check: func(t *testing.T, in picode.Input) {
				if in.LineNumbers.Show {
					t.Error("LineNumbers.Show = true, want false")
				}
			},
		},
		{
			name: "invalid values pass through",
			args: []string{"--font-size", "0", "--code-background-color", "blue"},
			check: func(t *testing.T, in picode.Input) {
				if in.Layout.FontSize != 0 || in.Colors.CodeBackground != "blue" {
					t.Errorf("got size %d color %q, want raw flag values", in.Layout.FontSize, in.Colors.CodeBackground)
				}
			},
		},
		{
			name: "layout and highlight",
			args: []string{"--margin", "0", "--padding", "2", "--space-between-lines", "1", "--lines-highlighted", "4"},
			check: func(t *testing.T, in picode.Input) {
				if in.Layout.Margin != 0 || in.Layout.Padding != 2 || in.Layout.LineSpacing != 1 {
					t.Errorf("Layout = %+v", *in.Layout)
				}
				if !slices.Equal(in.HighlightLines, []int{4}) {
					t.Errorf("HighlightLines = %v, want [4]", in.HighlightLines)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, _, err := parseRenderFlags(tt.args)
			if err != nil {
				t.Fatalf("parseRenderFlags() error = %v", err)
			}
			in := base()
			applyFlags(f, &in)
			tt.check(t, in)
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Config selection
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "picode.yaml")
	if err := os.WriteFile(path, []byte("style: dracula\nfont:\n  size: 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("flag path", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv(t)
		cfg, err := loadConfig(path, &envConfig{}, env)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Style != "dracula" || cfg.Font.Size != 16 {
			t.Errorf("cfg = %+v, want file values", cfg)
		}
	})

	t.Run("env path when flag empty", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv(t)
		cfg, err := loadConfig("", &envConfig{ConfigPath: path}, env)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Style != "dracula" {
			t.Errorf("Style = %q, want dracula", cfg.Style)
		}
	})

	t.Run("environment config copied", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv(t)
		env.Config = &config.Config{Style: "github"}
		cfg, err := loadConfig("", &envConfig{}, env)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		cfg.Style = "changed"
		if env.Config.Style != "github" {
			t.Error("loadConfig() must not return env.Config itself")
		}
	})

	t.Run("missing config", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv(t)
		_, err := loadConfig(filepath.Join(t.TempDir(), "none.yaml"), &envConfig{}, env)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("loadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveWorkers - Worker count validation
// ---------------------------------------------------------------------------

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		want    int
		wantErr bool
	}{
		{"explicit", 3, 3, false},
		{"maximum", config.MaxWorkers, config.MaxWorkers, false},
		{"negative", -1, 0, true},
		{"too many", config.MaxWorkers + 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveWorkers(tt.n)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWorkerCount) {
					t.Errorf("resolveWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("resolveWorkers(%d) = %d, %v, want %d", tt.n, got, err, tt.want)
			}
		})
	}

	t.Run("auto", func(t *testing.T) {
		t.Parallel()

		got, err := resolveWorkers(0)
		if err != nil || got < minWorkers || got > maxAuto {
			t.Errorf("resolveWorkers(0) = %d, %v, want 1..%d", got, err, maxAuto)
		}
	})
}
