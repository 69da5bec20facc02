package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-picode/internal/config"
)

// envPrefix starts every environment variable picode reads.
const envPrefix = "PICODE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // PICODE_CONFIG: config file name or path
	Style      string // PICODE_STYLE: chroma style name or XML path
	Language   string // PICODE_LANGUAGE: lexer name
	FontName   string // PICODE_FONT_NAME: installed font family
	FontSize   int    // PICODE_FONT_SIZE: font size in pixels
	OutputDir  string // PICODE_OUTPUT_DIR: default output directory
	AssetPath  string // PICODE_ASSET_PATH: custom fonts/ and styles/ directory
	Workers    int    // PICODE_WORKERS: parallel workers
}

// knownEnvVars lists valid PICODE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PICODE_CONFIG":     true,
	"PICODE_STYLE":      true,
	"PICODE_LANGUAGE":   true,
	"PICODE_FONT_NAME":  true,
	"PICODE_FONT_SIZE":  true,
	"PICODE_OUTPUT_DIR": true,
	"PICODE_ASSET_PATH": true,
	"PICODE_WORKERS":    true,
	"PICODE_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PICODE_CONFIG"),
		Style:      os.Getenv("PICODE_STYLE"),
		Language:   os.Getenv("PICODE_LANGUAGE"),
		FontName:   os.Getenv("PICODE_FONT_NAME"),
		OutputDir:  os.Getenv("PICODE_OUTPUT_DIR"),
		AssetPath:  os.Getenv("PICODE_ASSET_PATH"),
	}

	if size := os.Getenv("PICODE_FONT_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			cfg.FontSize = n
		}
	}

	if workers := os.Getenv("PICODE_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			cfg.Workers = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PICODE_* variables.
// Helps catch typos like PICODE_FONTSIZE instead of PICODE_FONT_SIZE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config values with the environment variables
// that are set. Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via applyFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	overrideString(&cfg.Style, env.Style)
	overrideString(&cfg.Language, env.Language)

	// A font name from the environment replaces the configured font paths
	if env.FontName != "" {
		cfg.Font.Name = env.FontName
		cfg.Font.Paths = nil
	}
	if env.FontSize != 0 {
		cfg.Font.Size = env.FontSize
	}

	overrideString(&cfg.Output.DefaultDir, env.OutputDir)
	overrideString(&cfg.Assets.BasePath, env.AssetPath)
	if env.Workers != 0 {
		cfg.Workers = env.Workers
	}
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
