package assets

import (
	"errors"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_CustomWithFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "fonts", "Hack-Regular.ttf", "custom-font")
	writeAsset(t, dir, "styles", "picode.xml", "custom-style")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("custom font", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadFont("Hack-Regular")
		if err != nil {
			t.Fatalf("LoadFont() error = %v", err)
		}
		if string(got) != "custom-font" {
			t.Errorf("LoadFont() = %q, want custom-font", got)
		}
	})

	t.Run("bundled font falls back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadFont(FontRegular)
		if err != nil {
			t.Fatalf("LoadFont() error = %v", err)
		}
		if len(got) == 0 {
			t.Error("expected embedded font bytes")
		}
	})

	t.Run("custom style overrides embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("picode")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if string(got) != "custom-style" {
			t.Errorf("LoadStyle() = %q, want custom-style", got)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadStyle("nowhere"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestAssetResolver_ValidationErrorsNotFallenBack(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := resolver.LoadFont("../etc"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadFont() error = %v, want ErrInvalidAssetName", err)
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{ErrFontNotFound, true},
		{ErrStyleNotFound, true},
		{ErrInvalidAssetName, false},
		{ErrAssetRead, false},
		{errors.New("other"), false},
	}

	for _, tt := range tests {
		if got := isNotFoundError(tt.err); got != tt.want {
			t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
