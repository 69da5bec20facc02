// Package config loads picode render defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-picode/internal/fileutil"
	"github.com/alnah/go-picode/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength = 100  // style, language, font name
	MaxPathLength = 4096 // PATH_MAX on Linux
	MaxFontSize   = 512
	MaxSpacing    = 1000 // margin, padding, line spacing
	MaxWorkers    = 64
)

// configDirName is the directory under os.UserConfigDir holding named configs.
const configDirName = "go-picode"

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config holds render defaults. Zero values mean "not set" so that the
// library defaults apply.
type Config struct {
	Style       string            `yaml:"style"`
	Language    string            `yaml:"language"`
	Font        FontConfig        `yaml:"font"`
	Layout      LayoutConfig      `yaml:"layout"`
	LineNumbers LineNumbersConfig `yaml:"lineNumbers"`
	Colors      ColorsConfig      `yaml:"colors"`
	StripAll    bool              `yaml:"stripAll"`
	Output      OutputConfig      `yaml:"output"`
	Assets      AssetsConfig      `yaml:"assets"`
	Workers     int               `yaml:"workers"`
}

// FontConfig selects the font. Name and Paths are mutually exclusive.
// Paths is passed to the renderer as is: a list that is not exactly four
// loadable files makes it warn and use the bundled fonts.
type FontConfig struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths"` // regular, italic, bold, bold-italic
	Size  int      `yaml:"size"`
}

// LayoutConfig defines spacing in pixels.
// A nil field is unset; an explicit 0 is kept.
type LayoutConfig struct {
	Margin      *int `yaml:"margin"`
	Padding     *int `yaml:"padding"`
	LineSpacing *int `yaml:"lineSpacing"`
}

// LineNumbersConfig defines the line-number gutter.
type LineNumbersConfig struct {
	Show      bool `yaml:"show"`
	Bold      bool `yaml:"bold"`
	Italic    bool `yaml:"italic"`
	Separator bool `yaml:"separator"`
	Padding   *int `yaml:"padding"` // nil = unset
}

// ColorsConfig holds #RRGGBB colors. Empty fields keep the defaults.
type ColorsConfig struct {
	LineNumbersBackground string `yaml:"lineNumbersBackground"`
	LineNumbers           string `yaml:"lineNumbers"`
	Highlight             string `yaml:"highlight"`
	PictureBackground     string `yaml:"pictureBackground"`
	CodeBackground        string `yaml:"codeBackground"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the input file
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("style", c.Style, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("language", c.Language, MaxNameLength); err != nil {
		return err
	}

	// Font
	if err := validateFieldLength("font.name", c.Font.Name, MaxNameLength); err != nil {
		return err
	}
	if c.Font.Name != "" && len(c.Font.Paths) > 0 {
		return fmt.Errorf("%w: font.name and font.paths are mutually exclusive", ErrInvalidValue)
	}
	for i, p := range c.Font.Paths {
		if err := validateFieldLength(fmt.Sprintf("font.paths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateRange("font.size", c.Font.Size, MaxFontSize); err != nil {
		return err
	}

	// Layout
	spacings := []struct {
		field string
		value *int
	}{
		{"layout.margin", c.Layout.Margin},
		{"layout.padding", c.Layout.Padding},
		{"layout.lineSpacing", c.Layout.LineSpacing},
		{"lineNumbers.padding", c.LineNumbers.Padding},
	}
	for _, sp := range spacings {
		if sp.value == nil {
			continue
		}
		if err := validateRange(sp.field, *sp.value, MaxSpacing); err != nil {
			return err
		}
	}

	// Colors
	colors := []struct{ field, value string }{
		{"colors.lineNumbersBackground", c.Colors.LineNumbersBackground},
		{"colors.lineNumbers", c.Colors.LineNumbers},
		{"colors.highlight", c.Colors.Highlight},
		{"colors.pictureBackground", c.Colors.PictureBackground},
		{"colors.codeBackground", c.Colors.CodeBackground},
	}
	for _, col := range colors {
		if col.value != "" && !hexColorRe.MatchString(col.value) {
			return fmt.Errorf("%w: %s: %q is not a #RRGGBB color", ErrInvalidValue, col.field, col.value)
		}
	}

	// Paths and workers
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateRange("workers", c.Workers, MaxWorkers); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateRange checks 0 <= value <= maxValue. Zero means unset.
func validateRange(fieldName string, value, maxValue int) error {
	if value < 0 || value > maxValue {
		return fmt.Errorf("%w: %s: must be between 0 and %d, got %d", ErrInvalidValue, fieldName, maxValue, value)
	}
	return nil
}

// Int returns a pointer to v, for setting optional spacing fields.
func Int(v int) *int {
	return &v
}

// DefaultConfig returns an empty configuration: every field unset.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	var pathErr *fs.PathError
	switch err := yamlutil.ReadFileStrict(configPath, &cfg); {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	case errors.As(err, &pathErr):
		return nil, fmt.Errorf("reading config file: %w", err)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the locations tried for a config name, in order:
// current directory, then the user config directory, each with .yaml
// then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing path of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
