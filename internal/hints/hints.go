// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-picode/internal/fileutil"
)

// maxListed caps how many names a hint lists before summarizing the rest.
const maxListed = 8

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForFontNotFound returns hints for a font family that is not installed.
// Detects CI/Docker environments, which usually ship without fonts.
func ForFontNotFound() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if inCI || IsInContainer() {
		hints = append(hints, "containers rarely ship fonts, install one or mount a font directory")
	}

	hints = append(hints, "use --font-paths with four font files")

	if os.Getenv("PICODE_ASSET_PATH") == "" {
		hints = append(hints, "or set PICODE_ASSET_PATH to a directory holding fonts/")
	}

	return formatHints(hints)
}

// ForUnknownLanguage returns a hint pointing at the language listing.
func ForUnknownLanguage() string {
	return format("run picode --list-languages for the supported names")
}

// ForInvalidColor returns a hint describing the accepted color syntax.
func ForInvalidColor() string {
	return format("colors use the #RRGGBB form, e.g. #FF8800")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-picode/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-picode") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	if len(available) > maxListed {
		rest := len(available) - maxListed
		return format(fmt.Sprintf("available: %s and %d more (see --list-styles)",
			strings.Join(available[:maxListed], ", "), rest))
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
