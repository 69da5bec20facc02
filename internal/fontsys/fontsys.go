// Package fontsys locates installed font families by name.
//
// Font files are found by walking the platform font directories. Each
// TrueType or OpenType file is parsed with golang.org/x/image/font/sfnt and
// classified by the family and subfamily strings of its name table.
package fontsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// ErrNotFound indicates no installed font matches the requested family.
var ErrNotFound = errors.New("font family not found")

// Variant is the style of a face within its family.
type Variant int

// Variants, in the order they are passed to the renderer.
const (
	Regular Variant = iota
	Italic
	Bold
	BoldItalic
)

func (v Variant) String() string {
	switch v {
	case Italic:
		return "italic"
	case Bold:
		return "bold"
	case BoldItalic:
		return "bold-italic"
	default:
		return "regular"
	}
}

// Face is one installed font file.
type Face struct {
	Path      string
	Family    string
	Subfamily string
}

// Variant classifies the face by its subfamily name.
func (f Face) Variant() Variant {
	sub := strings.ToLower(f.Subfamily)
	bold := strings.Contains(sub, "bold")
	italic := strings.Contains(sub, "italic") || strings.Contains(sub, "oblique")
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	default:
		return Regular
	}
}

// Family holds the file paths of the four faces of a font family.
// A variant the family does not provide points at the regular face.
type Family struct {
	Name       string
	Regular    string
	Italic     string
	Bold       string
	BoldItalic string
}

// Paths returns the faces in regular, italic, bold, bold-italic order.
func (f *Family) Paths() []string {
	return []string{f.Regular, f.Italic, f.Bold, f.BoldItalic}
}

// FallbackFamily returns the family tried when a requested font is missing.
func FallbackFamily() string {
	if runtime.GOOS == "windows" {
		return "Courier New"
	}
	return "Bitstream Vera Sans Mono"
}

// DefaultDirs returns the font directories of the current platform.
// Directories that do not exist are still listed; Scan skips them.
func DefaultDirs() []string {
	home, _ := os.UserHomeDir()

	var dirs []string
	switch runtime.GOOS {
	case "windows":
		if windir := os.Getenv("WINDIR"); windir != "" {
			dirs = append(dirs, filepath.Join(windir, "Fonts"))
		}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
	case "darwin":
		dirs = append(dirs, "/System/Library/Fonts", "/Library/Fonts")
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	default:
		dirs = append(dirs, "/usr/share/fonts", "/usr/local/share/fonts")
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			dirs = append(dirs, filepath.Join(xdg, "fonts"))
		} else if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
	}
	return dirs
}

// Scan walks dirs and returns every parsable .ttf/.otf face, sorted by path.
// Unreadable directories and files that fail to parse are skipped.
func Scan(dirs []string) []Face {
	var faces []Face
	var buf sfnt.Buffer

	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !isFontFile(path) {
				return nil
			}
			face, ok := readFace(path, &buf)
			if ok {
				faces = append(faces, face)
			}
			return nil
		})
	}

	sort.Slice(faces, func(i, j int) bool { return faces[i].Path < faces[j].Path })
	return faces
}

// Index looks up families in a fixed set of directories. The directories
// are scanned once, on first use; later lookups reuse the result. An Index
// is safe for concurrent use.
type Index struct {
	dirs  []string
	once  sync.Once
	faces []Face
}

// NewIndex returns an Index over dirs. Nothing is read until the first lookup.
func NewIndex(dirs []string) *Index {
	return &Index{dirs: slices.Clone(dirs)}
}

// Faces returns the faces found in the index directories.
func (x *Index) Faces() []Face {
	x.once.Do(func() { x.faces = Scan(x.dirs) })
	return x.faces
}

// Find returns the installed family matching name, compared case-insensitively.
// Returns ErrNotFound when no face of the family exists.
func (x *Index) Find(name string) (*Family, error) {
	want := strings.TrimSpace(name)
	if want == "" {
		return nil, fmt.Errorf("%w: empty family name", ErrNotFound)
	}

	var found [4]string
	first := ""
	for _, face := range x.Faces() {
		if !strings.EqualFold(face.Family, want) {
			continue
		}
		if first == "" {
			first = face.Path
		}
		if v := face.Variant(); found[v] == "" {
			found[v] = face.Path
		}
	}

	if first == "" {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	regular := found[Regular]
	if regular == "" {
		regular = first
	}
	fam := &Family{Name: want, Regular: regular}
	fam.Italic = orDefault(found[Italic], regular)
	fam.Bold = orDefault(found[Bold], regular)
	fam.BoldItalic = orDefault(found[BoldItalic], fam.Bold)
	return fam, nil
}

// Families returns the sorted, de-duplicated family names of the index.
func (x *Index) Families() []string {
	seen := make(map[string]bool)
	var names []string
	for _, face := range x.Faces() {
		key := strings.ToLower(face.Family)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, face.Family)
	}
	sort.Strings(names)
	return names
}

// Find scans dirs and returns the family matching name.
func Find(name string, dirs []string) (*Family, error) {
	return NewIndex(dirs).Find(name)
}

// Families scans dirs and returns the family names found.
func Families(dirs []string) []string {
	return NewIndex(dirs).Families()
}

func readFace(path string, buf *sfnt.Buffer) (Face, bool) {
	data, err := os.ReadFile(path) // #nosec G304 -- walking font directories
	if err != nil {
		return Face{}, false
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return Face{}, false
	}
	family, err := f.Name(buf, sfnt.NameIDFamily)
	if err != nil || family == "" {
		return Face{}, false
	}
	sub, _ := f.Name(buf, sfnt.NameIDSubfamily)
	return Face{Path: path, Family: family, Subfamily: sub}, true
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
