package picode

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	opts = append([]Option{WithWarningWriter(io.Discard), WithFontDirs()}, opts...)
	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func TestResolveStyle(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	tests := []struct {
		name         string
		style        string
		wantName     string
		wantWarnings int
	}{
		{"chroma registry", "dracula", "dracula", 0},
		{"case insensitive", "Monokai", "monokai", 0},
		{"bundled style", "picode", "picode", 0},
		{"unknown falls back to monokai", "no-such-style", "monokai", 1},
		{"missing file falls back to monokai", "./missing/theme.xml", "monokai", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := &warner{out: io.Discard}
			style := r.resolveStyle(tt.style, w)
			if style.Name != tt.wantName {
				t.Errorf("style = %q, want %q", style.Name, tt.wantName)
			}
			if len(w.messages) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", w.messages, tt.wantWarnings)
			}
		})
	}
}

func TestResolveStyle_XMLFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "night.xml")
	xml := `<style name="night"><entry type="Background" style="#ffffff bg:#000000"/></style>`
	if err := os.WriteFile(path, []byte(xml), 0o644); err != nil {
		t.Fatal(err)
	}

	w := &warner{out: io.Discard}
	style := newTestRenderer(t).resolveStyle(path, w)
	if style.Name != "night" {
		t.Errorf("style = %q, want night", style.Name)
	}
	if len(w.messages) != 0 {
		t.Errorf("unexpected warnings: %v", w.messages)
	}
}

func TestResolveStyle_AssetDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	xml := `<style name="forest"><entry type="Background" style="#00ff00 bg:#002200"/></style>`
	if err := os.WriteFile(filepath.Join(dir, "styles", "forest.xml"), []byte(xml), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestRenderer(t, WithAssetPath(dir))
	style := r.resolveStyle("forest", &warner{out: io.Discard})
	if style.Name != "forest" {
		t.Errorf("style = %q, want forest", style.Name)
	}
}

func TestWarner(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	w := &warner{out: &out}
	w.warnf("style %q not found", "x")

	if got := out.String(); got != "warning: style \"x\" not found\n" {
		t.Errorf("output = %q", got)
	}
	if len(w.messages) != 1 || w.messages[0] != `style "x" not found` {
		t.Errorf("messages = %v", w.messages)
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()

	names := Styles()
	for _, want := range []string{"monokai", "picode"} {
		if !slices.Contains(names, want) {
			t.Errorf("Styles() missing %q", want)
		}
	}
}
