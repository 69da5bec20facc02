package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/alnah/go-picode"
	"github.com/alnah/go-picode/internal/fileutil"
	"github.com/alnah/go-picode/internal/fontsys"
	"github.com/alnah/go-picode/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Renderer rendererInfo `json:"renderer"`
	Fonts    fontsInfo    `json:"fonts"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// rendererInfo holds the result of a test render with bundled assets.
type rendererInfo struct {
	OK        bool   `json:"ok"`
	Font      string `json:"font,omitempty"`
	Languages int    `json:"languages"`
	Styles    int    `json:"styles"`
}

// fontsInfo holds installed font discovery results.
type fontsInfo struct {
	Dirs          []string `json:"dirs"`
	Families      int      `json:"families"`
	Fallback      string   `json:"fallback"`
	FallbackFound bool     `json:"fallback_found"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	AssetPath     string `json:"picode_asset_path"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {
		printDoctorUsage(env.Stdout)
		return ExitSuccess
	}
	jsonOutput := slices.Contains(args, "--json")

	dirs := env.FontDirs
	if dirs == nil {
		dirs = fontsys.DefaultDirs()
	}
	result := runDoctor(dirs)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(fontDirs []string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			AssetPath: os.Getenv("PICODE_ASSET_PATH"),
		},
	}

	checkRenderer(result)
	checkFonts(result, fontDirs)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkRenderer renders a snippet with the bundled assets only.
func checkRenderer(result *doctorResult) {
	result.Renderer.Languages = len(picode.Languages())
	result.Renderer.Styles = len(picode.Styles())

	r, err := picode.NewRenderer(picode.WithWarningWriter(io.Discard), picode.WithFontDirs())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Renderer setup failed: %v", err))
		return
	}
	res, err := r.Render(context.Background(), picode.Input{Code: "package main", Language: "go"})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Test render failed: %v", err))
		return
	}
	result.Renderer.OK = true
	result.Renderer.Font = res.Font
}

// checkFonts scans the existing font directories and looks for the
// fallback family.
func checkFonts(result *doctorResult, dirs []string) {
	dirs = slices.DeleteFunc(slices.Clone(dirs), func(d string) bool { return !fileutil.DirExists(d) })
	result.Fonts.Dirs = dirs
	index := fontsys.NewIndex(dirs)
	result.Fonts.Families = len(index.Families())
	result.Fonts.Fallback = fontsys.FallbackFamily()

	if _, err := index.Find(result.Fonts.Fallback); err == nil {
		result.Fonts.FallbackFound = true
	} else {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Fallback font %q not installed, missing fonts use bundled %s", result.Fonts.Fallback, picode.BundledFontFamily))
	}

	if result.Fonts.Families == 0 {
		result.Warnings = append(result.Warnings, "No installed fonts found"+hints.ForFontNotFound())
	}
}

// checkEnvironment detects container and CI environments and validates
// PICODE_ASSET_PATH.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if p := result.Env.AssetPath; p != "" {
		if _, err := picode.NewAssetLoader(p); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("PICODE_ASSET_PATH unusable: %v", err))
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("PICODE_CONTAINER") == "1" {
		return true, "PICODE_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "picode-doctor-test")
	if err := fileutil.WriteFileAtomic(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "picode doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Renderer")
	if r.Renderer.OK {
		fmt.Fprintf(w, "  [OK] Bundled font: %s\n", r.Renderer.Font)
	} else {
		fmt.Fprintln(w, "  [ERROR] Test render failed")
	}
	fmt.Fprintf(w, "  [OK] Languages: %d\n", r.Renderer.Languages)
	fmt.Fprintf(w, "  [OK] Styles: %d\n", r.Renderer.Styles)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Fonts")
	if len(r.Fonts.Dirs) == 0 {
		fmt.Fprintln(w, "  [WARN] Directories: none found")
	} else {
		fmt.Fprintf(w, "  [OK] Directories: %s\n", strings.Join(r.Fonts.Dirs, ", "))
	}
	fmt.Fprintf(w, "  [OK] Installed families: %d\n", r.Fonts.Families)
	if r.Fonts.FallbackFound {
		fmt.Fprintf(w, "  [OK] Fallback: %s\n", r.Fonts.Fallback)
	} else {
		fmt.Fprintf(w, "  [WARN] Fallback: %s not installed\n", r.Fonts.Fallback)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.Env.AssetPath != "" {
		fmt.Fprintf(w, "  [OK] Asset path: %s\n", r.Env.AssetPath)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
