package widgets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadget-inc/vite-plugin-chatgpt-widgets/lib/entry"
)

func writeWidgetFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("export default () => null;\n"), 0644))
	}
}

// newServePlugin returns a plugin that has been through Config and
// ConfigResolved against a serve-mode host rooted at root.
func newServePlugin(t *testing.T, root string, opts Options, plugins ...PluginInfo) *Plugin {
	t.Helper()
	p := New(opts)
	cfg := ResolvedConfig{
		Root:    root,
		Base:    "/",
		Command: CommandServe,
		Plugins: plugins,
	}
	p.Config(&cfg)
	require.NoError(t, p.ConfigResolved(cfg))
	return p
}

func TestConfigResolvedValidatesBase(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		base    string
		wantErr bool
	}{
		{"plugin base absolute", "https://example.com/", "/", false},
		{"host base absolute", "", "https://example.com/", false},
		{"both absolute", "https://example.com/", "https://other.com/", false},
		{"neither absolute", "", "/", true},
		{"plugin base invalid, host absolute", "not-a-url", "https://example.com/", false},
		{"plugin base invalid, host relative", "not-a-url", "/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(Options{BaseURL: tt.baseURL})
			err := p.ConfigResolved(ResolvedConfig{Root: t.TempDir(), Base: tt.base, Command: CommandBuild})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNoBaseURL)
		})
	}
}

func TestConfigResolvedErrorNamesBothFixes(t *testing.T) {
	p := New(Options{})
	err := p.ConfigResolved(ResolvedConfig{Root: t.TempDir(), Base: "/assets/"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base")
	assert.Contains(t, err.Error(), "baseUrl")
	assert.Contains(t, err.Error(), `"/assets/"`)
}

func TestConfigRegistersReactForPrebundling(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "react"), 0755))

	cfg := ResolvedConfig{Root: root}
	New(Options{BaseURL: "https://example.com/"}).Config(&cfg)
	assert.Equal(t, []string{"react", "react-dom/client"}, cfg.OptimizeDeps)

	// Absence of the dependency is not an error; nothing is registered.
	cfg = ResolvedConfig{Root: t.TempDir()}
	New(Options{BaseURL: "https://example.com/"}).Config(&cfg)
	assert.Empty(t, cfg.OptimizeDeps)
}

func TestEntriesMergesAllInputShapes(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, DefaultWidgetsDir)
	writeWidgetFiles(t, dir, "TestWidget.tsx", "AnotherWidget.tsx")
	p := newServePlugin(t, root, Options{BaseURL: "https://example.com/"})

	widgetEntries := map[string]string{
		"TestWidget":    entry.HTMLEntryID("TestWidget"),
		"AnotherWidget": entry.HTMLEntryID("AnotherWidget"),
	}

	tests := []struct {
		name     string
		existing any
		extra    map[string]string
	}{
		{"nil input", nil, nil},
		{"single string", "src/index.html", map[string]string{"index": "src/index.html"}},
		{"list", []string{"src/index.html", "src/admin.html"}, map[string]string{"index": "src/index.html", "admin": "src/admin.html"}},
		{"mapping", map[string]string{"main": "src/index.html"}, map[string]string{"main": "src/index.html"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := p.Entries(tt.existing)
			require.NoError(t, err)

			want := make(map[string]string)
			for k, v := range tt.extra {
				want[k] = v
			}
			for k, v := range widgetEntries {
				want[k] = v
			}
			assert.Equal(t, want, merged)
		})
	}

	_, err := p.Entries(42)
	assert.Error(t, err)
}

func TestEntriesMissingWidgetsDirectory(t *testing.T) {
	p := newServePlugin(t, t.TempDir(), Options{BaseURL: "https://example.com/"})
	merged, err := p.Entries(nil)
	require.NoError(t, err)
	assert.Empty(t, merged)
}

func TestResolveID(t *testing.T) {
	p := newServePlugin(t, t.TempDir(), Options{BaseURL: "https://example.com/"})

	htmlID := entry.HTMLEntryID("TestWidget")
	resolved, ok := p.ResolveID(htmlID)
	require.True(t, ok)
	assert.Equal(t, htmlID, resolved)

	scriptID := entry.ScriptEntryID("TestWidget")
	resolved, ok = p.ResolveID(scriptID)
	require.True(t, ok)
	assert.Equal(t, entry.PrivateMarker+scriptID, resolved)

	_, ok = p.ResolveID("src/main.tsx")
	assert.False(t, ok)
}

func TestLoadHTMLEntry(t *testing.T) {
	p := newServePlugin(t, t.TempDir(), Options{BaseURL: "https://example.com/"})

	content, ok, err := p.Load(context.Background(), entry.HTMLEntryID("TestWidget"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, content, "<title>TestWidget Widget</title>")
	assert.Contains(t, content, `src="`+entry.ScriptEntryID("TestWidget")+`"`)
}

func TestLoadScriptEntry(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, DefaultWidgetsDir)
	writeWidgetFiles(t, dir, "WidgetA.tsx", "root.tsx")
	p := newServePlugin(t, root, Options{BaseURL: "https://example.com/"})

	code, ok, err := p.Load(context.Background(), entry.PrivateMarker+entry.ScriptEntryID("WidgetA"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, code, filepath.Join(dir, "WidgetA.tsx"))
	assert.Contains(t, code, filepath.Join(dir, "root.tsx"))
	assert.Contains(t, code, "createElement(Layout, null, createElement(Widget))")
}

func TestLoadScriptEntryMissingSourceIsFatal(t *testing.T) {
	p := newServePlugin(t, t.TempDir(), Options{BaseURL: "https://example.com/"})

	_, ok, err := p.Load(context.Background(), entry.ScriptEntryID("Missing"))
	require.True(t, ok)
	require.Error(t, err)
	assert.ErrorIs(t, err, entry.ErrNoSource)
	assert.Contains(t, err.Error(), "Missing")
}

func TestLoadForeignIDPassesThrough(t *testing.T) {
	p := newServePlugin(t, t.TempDir(), Options{BaseURL: "https://example.com/"})

	_, ok, err := p.Load(context.Background(), "src/main.tsx")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadScriptEntryHMRBootstrap(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, DefaultWidgetsDir)
	writeWidgetFiles(t, dir, "WidgetA.tsx")

	// Client routing plugin present in serve mode: bootstrap import first.
	p := newServePlugin(t, root, Options{BaseURL: "https://example.com/"},
		PluginInfo{Name: "react-router"})
	code, _, err := p.Load(context.Background(), entry.ScriptEntryID("WidgetA"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, `import "`+hmrBootstrapID+`";`))

	// Refresh plugin alone never triggers the bootstrap import.
	p = newServePlugin(t, root, Options{BaseURL: "https://example.com/"},
		PluginInfo{Name: "vite:react-refresh"})
	code, _, err = p.Load(context.Background(), entry.ScriptEntryID("WidgetA"))
	require.NoError(t, err)
	assert.NotContains(t, code, hmrBootstrapID)
}

func TestTransformHTMLShims(t *testing.T) {
	url := "/" + entry.HTMLEntryID("WidgetA")

	tests := []struct {
		name    string
		plugins []PluginInfo
		expect  string
	}{
		{"refresh without routing", []PluginInfo{{Name: "vite:react-refresh"}}, reactRefreshShim},
		{"routing wins over refresh", []PluginInfo{{Name: "vite:react-refresh"}, {Name: "react-router"}}, clientRoutingShim},
		{"routing alone", []PluginInfo{{Name: "react-router"}}, clientRoutingShim},
		{"neither plugin", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newServePlugin(t, t.TempDir(), Options{BaseURL: "https://example.com/"}, tt.plugins...)
			tags := p.TransformHTML(url)
			if tt.expect == "" {
				assert.Empty(t, tags)
				return
			}
			require.Len(t, tags, 1)
			assert.Equal(t, "script", tags[0].Tag)
			assert.Equal(t, tt.expect, tags[0].Children)
			// Inline classic script, ahead of any module scripts.
			assert.NotContains(t, tags[0].Attrs, "type")
			assert.Equal(t, InjectHeadPrepend, tags[0].InjectTo)
		})
	}
}

func TestTransformHTMLIgnoresOtherPages(t *testing.T) {
	p := newServePlugin(t, t.TempDir(), Options{BaseURL: "https://example.com/"},
		PluginInfo{Name: "vite:react-refresh"})
	assert.Empty(t, p.TransformHTML("/index.html"))
}

func TestTransformHTMLBuildMode(t *testing.T) {
	p := New(Options{BaseURL: "https://example.com/"})
	cfg := ResolvedConfig{
		Root:    t.TempDir(),
		Base:    "/",
		Command: CommandBuild,
		Plugins: []PluginInfo{{Name: "vite:react-refresh"}},
	}
	p.Config(&cfg)
	require.NoError(t, p.ConfigResolved(cfg))
	assert.Empty(t, p.TransformHTML("/"+entry.HTMLEntryID("WidgetA")))
}
