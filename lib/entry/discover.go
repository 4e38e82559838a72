// Package entry discovers widget source files and synthesizes the virtual
// HTML and script entrypoints that expose each widget as its own bundle.
//
// A widget is a single component file in the configured widgets directory.
// Discovery derives the widget name from the filename stem; the reserved
// stem "root" names an optional layout component that wraps every widget at
// render time and is never itself a widget.
package entry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExtensions are the supported widget source extensions, in precedence
// order. When several files share a stem, the earliest extension wins.
var sourceExtensions = []string{".tsx", ".ts", ".jsx", ".js"}

// layoutStem is the reserved filename stem for the layout component.
const layoutStem = "root"

// ErrNoSource is returned when a widget's source file cannot be located
// under any supported extension.
var ErrNoSource = errors.New("chatgpt-widgets: widget source file not found")

// Widget pairs a widget name with the source file it was discovered from.
type Widget struct {
	Name       string
	SourcePath string
}

// Discover lists the widgets in dir. The listing is non-recursive, filtered
// to the supported source extensions, and ordered by name. The layout file
// is excluded by stem, case-insensitively. A missing directory is not an
// error: an unconfigured project simply has no widgets.
func Discover(dir string) ([]Widget, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read widgets directory %s: %w", dir, err)
	}

	// stem -> index into sourceExtensions of the best match so far
	best := make(map[string]int)
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		ext := filepath.Ext(ent.Name())
		rank := extensionRank(ext)
		if rank < 0 {
			continue
		}
		stem := strings.TrimSuffix(ent.Name(), ext)
		if strings.EqualFold(stem, layoutStem) {
			continue
		}
		if current, ok := best[stem]; !ok || rank < current {
			best[stem] = rank
		}
	}

	names := make([]string, 0, len(best))
	for stem := range best {
		names = append(names, stem)
	}
	sort.Strings(names)

	widgets := make([]Widget, 0, len(names))
	for _, name := range names {
		widgets = append(widgets, Widget{
			Name:       name,
			SourcePath: filepath.Join(dir, name+sourceExtensions[best[name]]),
		})
	}
	return widgets, nil
}

// FindSource locates the on-disk source file for a widget by trying each
// supported extension in precedence order.
func FindSource(dir, name string) (string, error) {
	for _, ext := range sourceExtensions {
		path := filepath.Join(dir, name+ext)
		if fileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s (tried %s)", ErrNoSource, name, dir, strings.Join(sourceExtensions, ", "))
}

// FindLayout locates the optional layout component file in dir. The lookup
// runs anew on every call; the layout binding is never cached.
func FindLayout(dir string) (string, bool) {
	for _, ext := range sourceExtensions {
		path := filepath.Join(dir, layoutStem+ext)
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

func extensionRank(ext string) int {
	for i, candidate := range sourceExtensions {
		if ext == candidate {
			return i
		}
	}
	return -1
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
