package widgets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/gadget-inc/vite-plugin-chatgpt-widgets/lib/entry"
)

// resolveFromManifest looks a widget up in the bundler's build manifest and
// reads the built HTML document from disk. The manifest maps virtual entry
// ids to output chunks; the built document itself sits next to the manifest
// directory's parent, named after the virtual id, which mirrors how the
// bundler names virtual HTML entry outputs.
//
// The content is returned verbatim: the bundler already absolutized asset
// URLs at build time with the same base configuration, so no further
// rewriting happens here.
func resolveFromManifest(name, manifestPath string) (ResolvedWidgetHTML, error) {
	path, err := filepath.Abs(manifestPath)
	if err != nil {
		return ResolvedWidgetHTML{}, fmt.Errorf("resolve manifest path %q: %w", manifestPath, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ResolvedWidgetHTML{}, fmt.Errorf("%w at %s: enable manifest output (build.manifest: true) in the Vite config", ErrManifestMissing, path)
		}
		return ResolvedWidgetHTML{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	// Manifest keys contain "." and ":", so iterate instead of path lookup,
	// collecting keys for the not-found message as we go.
	htmlID := entry.HTMLEntryID(name)
	var found bool
	var keys []string
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		keys = append(keys, key.String())
		if key.String() == htmlID && value.Get("file").Exists() {
			found = true
		}
		return true
	})
	if !found {
		return ResolvedWidgetHTML{}, fmt.Errorf("%w: widget %q (%s); available entries: %s", ErrManifestEntry, name, htmlID, strings.Join(keys, ", "))
	}

	// dist/.vite/manifest.json -> built document at dist/<html entry id>.
	builtPath := filepath.Join(filepath.Dir(filepath.Dir(path)), htmlID)
	content, err := os.ReadFile(builtPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ResolvedWidgetHTML{}, fmt.Errorf("%w: expected %s for widget %q; the manifest references it, so the build output was likely moved or pruned", ErrArtifactMissing, builtPath, name)
		}
		return ResolvedWidgetHTML{}, fmt.Errorf("read built widget HTML %s: %w", builtPath, err)
	}

	return ResolvedWidgetHTML{Content: string(content), Source: SourceManifest}, nil
}
