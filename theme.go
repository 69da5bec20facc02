package picode

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-picode/internal/assets"
	"github.com/alnah/go-picode/internal/fileutil"
)

// resolveStyle returns the chroma style for name. A path to an XML file is
// parsed directly; a name is looked up in the asset loader first (custom
// directory, then bundled styles) and then in the chroma registry.
// An unknown or unreadable style falls back to monokai with a warning.
func (r *Renderer) resolveStyle(name string, w *warner) *chroma.Style {
	if fileutil.IsFilePath(name) || strings.EqualFold(filepath.Ext(name), ".xml") {
		data, err := os.ReadFile(name) // #nosec G304 -- user-provided style path
		if err != nil {
			w.warnf("cannot read style %q: %v, using %s", name, err, DefaultStyle)
			return styles.Get(DefaultStyle)
		}
		style, err := chroma.NewXMLStyle(bytes.NewReader(data))
		if err != nil {
			w.warnf("invalid style %q: %v, using %s", name, err, DefaultStyle)
			return styles.Get(DefaultStyle)
		}
		return style
	}

	if data, err := r.assets.LoadStyle(name); err == nil {
		style, err := chroma.NewXMLStyle(bytes.NewReader(data))
		if err == nil {
			return style
		}
		w.warnf("invalid style %q: %v", name, err)
	}

	if style, ok := styles.Registry[strings.ToLower(name)]; ok {
		return style
	}

	w.warnf("style %q not found, using %s", name, DefaultStyle)
	return styles.Get(DefaultStyle)
}

// Styles returns the names of all built-in styles, sorted: the chroma
// registry plus the styles bundled with picode.
func Styles() []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range append(styles.Names(), assets.StyleNames()...) {
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
