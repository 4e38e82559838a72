package widgets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gadget-inc/vite-plugin-chatgpt-widgets/lib/entry"
	"github.com/gadget-inc/vite-plugin-chatgpt-widgets/lib/urlx"
)

// PluginName is the name this plugin registers with the host under, and the
// key used to introspect its options from the host's plugin list.
const PluginName = "chatgpt-widgets"

// hmrBootstrapID is the client-routing plugin's HMR runtime module,
// imported first in widget entry modules when that plugin is active in
// serve mode.
const hmrBootstrapID = "virtual:react-router/inject-hmr-runtime"

// Capabilities captures which of the host's other plugins affect widget
// entry synthesis. Resolved once at config resolution instead of re-scanning
// the plugin list at every hook invocation.
type Capabilities struct {
	// HasReactRefresh is true when the host's live-reload refresh plugin
	// is registered.
	HasReactRefresh bool
	// HasClientRouting is true when a client-side-routing plugin with its
	// own HMR runtime is registered.
	HasClientRouting bool
}

// pluginState is written only during the documented lifecycle steps
// (Config -> ConfigResolved) and read-only afterwards.
type pluginState struct {
	root     string
	resolved bool
	base     string
	command  Command
	caps     Capabilities
}

// Plugin is the build-time half of the widget system. One instance is
// registered with the host bundler; the host invokes the hook methods over
// its lifecycle in declaration order below.
type Plugin struct {
	opts  Options
	log   *logrus.Entry
	state pluginState
}

// New creates a plugin with the given options. Option defaults are applied
// here; validation happens in ConfigResolved, where the host's own base is
// known.
func New(opts Options) *Plugin {
	return &Plugin{
		opts: opts.withDefaults(),
		log:  logrus.WithField("plugin", PluginName),
	}
}

// Name returns the plugin's registration name.
func (p *Plugin) Name() string { return PluginName }

// Options returns the plugin's effective options, published to the host's
// config introspection surface.
func (p *Plugin) Options() Options { return p.opts }

// Config captures the project root before config resolution. If the
// rendering runtime is physically present in the dependency tree it is
// registered for the host's dependency pre-bundling step; its absence is
// not an error.
func (p *Plugin) Config(cfg *ResolvedConfig) {
	p.state.root = cfg.Root
	if dirExists(filepath.Join(cfg.Root, "node_modules", "react")) {
		cfg.OptimizeDeps = append(cfg.OptimizeDeps, "react", "react-dom/client")
		p.log.Debug("registered react for dependency pre-bundling")
	}
}

// ConfigResolved validates the absolute-base precondition and resolves host
// capabilities once the host has merged all configuration. The check is
// eager: a missing base fails the build here rather than on the first
// widget request.
func (p *Plugin) ConfigResolved(cfg ResolvedConfig) error {
	if p.opts.BaseURL != "" && !urlx.IsAbsolute(p.opts.BaseURL) && !urlx.IsAbsolute(cfg.Base) {
		return fmt.Errorf("%w: the baseUrl option %q is not an absolute URL", ErrNoBaseURL, p.opts.BaseURL)
	}
	if p.opts.BaseURL == "" && !urlx.IsAbsolute(cfg.Base) {
		return fmt.Errorf("%w: set the baseUrl plugin option to an absolute URL, or configure an absolute base (currently %q) in the Vite config", ErrNoBaseURL, cfg.Base)
	}

	p.state.base = cfg.Base
	p.state.command = cfg.Command
	p.state.caps = detectCapabilities(cfg.Plugins)
	p.state.resolved = true

	p.log.WithFields(logrus.Fields{
		"command":       cfg.Command,
		"widgetsDir":    p.widgetsDir(),
		"reactRefresh":  p.state.caps.HasReactRefresh,
		"clientRouting": p.state.caps.HasClientRouting,
	}).Debug("config resolved")
	return nil
}

// Entries runs widget discovery and merges one HTML entry per widget into
// the host's entry-point set. The existing input may be a single path, a
// list of paths, or a name-to-path mapping; in every shape the widget
// entries are added alongside what is already there.
func (p *Plugin) Entries(existing any) (map[string]string, error) {
	merged := make(map[string]string)
	switch v := existing.(type) {
	case nil:
	case string:
		merged[entryKey(v)] = v
	case []string:
		for _, path := range v {
			merged[entryKey(path)] = path
		}
	case map[string]string:
		for key, path := range v {
			merged[key] = path
		}
	default:
		return nil, fmt.Errorf("chatgpt-widgets: unsupported entry input type %T", existing)
	}

	widgets, err := entry.Discover(p.widgetsDir())
	if err != nil {
		return nil, err
	}
	for _, w := range widgets {
		merged[w.Name] = entry.HTMLEntryID(w.Name)
	}
	p.log.WithField("widgets", len(widgets)).Debug("registered widget entry points")
	return merged, nil
}

// ResolveID claims the plugin's virtual module ids. HTML entries resolve to
// themselves; script entries resolve under the private marker so the host
// never tries to read them from disk. Foreign ids pass through unhandled.
func (p *Plugin) ResolveID(id string) (string, bool) {
	eid, ok := entry.ParseID(id)
	if !ok {
		return "", false
	}
	switch eid.Kind {
	case entry.KindHTML:
		return eid.String(), true
	case entry.KindScript:
		return entry.PrivateMarker + eid.String(), true
	}
	return "", false
}

// Load synthesizes content for the plugin's virtual modules. HTML entries
// become standalone widget documents; script entries become entry modules
// that mount the widget, wrapped in the layout component when one exists.
// A script entry whose widget source cannot be located is a fatal error for
// that module, not a silent skip.
func (p *Plugin) Load(ctx context.Context, id string) (string, bool, error) {
	eid, ok := entry.ParseID(id)
	if !ok {
		return "", false, nil
	}

	switch eid.Kind {
	case entry.KindHTML:
		html, err := entry.SynthesizeHTML(eid.Name)
		return html, true, err

	case entry.KindScript:
		dir := p.widgetsDir()
		src, err := entry.FindSource(dir, eid.Name)
		if err != nil {
			return "", true, err
		}
		opts := entry.ScriptOptions{Name: eid.Name, SourcePath: src}
		if layout, ok := entry.FindLayout(dir); ok {
			opts.LayoutPath = layout
		}
		if p.state.command == CommandServe && p.state.caps.HasClientRouting {
			opts.HMRBootstrap = hmrBootstrapID
		}
		code, err := entry.SynthesizeScript(opts)
		return code, true, err
	}
	return "", false, nil
}

func (p *Plugin) widgetsDir() string {
	if filepath.IsAbs(p.opts.WidgetsDir) {
		return p.opts.WidgetsDir
	}
	return filepath.Join(p.state.root, p.opts.WidgetsDir)
}

// detectCapabilities scans the host's registered plugin names. A
// client-routing plugin name also mentions react, so routing is matched
// first.
func detectCapabilities(plugins []PluginInfo) Capabilities {
	var caps Capabilities
	for _, info := range plugins {
		name := strings.ToLower(info.Name)
		switch {
		case strings.Contains(name, "react-router") || strings.Contains(name, "remix"):
			caps.HasClientRouting = true
		case strings.Contains(name, "react"):
			caps.HasReactRefresh = true
		}
	}
	return caps
}

// entryKey derives an entry name from a bare path input, matching how the
// host names unkeyed entries.
func entryKey(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
