// Package fileutil provides file and path helpers shared by the renderer and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrEmptyPath              = errors.New("path cannot be empty")
)

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a half-written image.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if path == "" {
		return ErrEmptyPath
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		ext = "tmp"
	}
	if err := ValidateExtension(ext); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".picode-*."+ext)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// ReplaceExt swaps the extension of path for ext (which includes the dot).
// A path without extension gets ext appended.
//
//   - "main.py", ".png"      -> "main.png"
//   - "src/app.tar.gz", ".png" -> "src/app.tar.png"
//   - "Makefile", ".png"     -> "Makefile.png"
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "monokai" -> false (name)
//   - "./themes/dark.xml" -> true (relative path)
//   - "/usr/share/fonts/Hack.ttf" -> true (absolute)
//   - "C:\Windows\Fonts\cour.ttf" -> true (Windows)
//   - "solarized-dark" -> false (hyphenated name)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
