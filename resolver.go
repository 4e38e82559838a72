package widgets

import (
	"context"
	"fmt"
	"strings"

	"github.com/gadget-inc/vite-plugin-chatgpt-widgets/lib/entry"
	"github.com/gadget-inc/vite-plugin-chatgpt-widgets/lib/urlx"
)

// devIDPrefix is the host's browser route for virtual modules. The
// dev-mode path rewrites virtual script srcs under it so the live-reload
// client can fetch them.
const devIDPrefix = "/@id/"

// Source identifies which resolution path produced a widget document.
type Source string

const (
	// SourceDevServer marks content produced by the live transform pipeline.
	SourceDevServer Source = "dev-server"
	// SourceManifest marks content read from a finished production build.
	SourceManifest Source = "manifest"
)

// ResolvedWidgetHTML is the outcome of one widget resolution. Content is
// recomputed from the source of truth on every call; nothing is cached.
type ResolvedWidgetHTML struct {
	Content string
	Source  Source
}

// WidgetInfo is one entry in a GetWidgets result.
type WidgetInfo struct {
	Name     string
	FilePath string
	Content  string
	Source   Source
}

// Mode selects a resolution path for GetWidgetHTML. It is a closed sum:
// DevMode carries a live dev-server handle, ProdMode a manifest path. The
// dispatch is decided by type at the call boundary, never by sniffing.
type Mode interface {
	mode()
}

// DevMode resolves widget HTML through a live dev server's transform
// pipeline.
type DevMode struct {
	Server DevServer
}

// ProdMode resolves widget HTML from a production build via the bundler's
// manifest. ManifestPath is resolved against the process working directory,
// not the build root, because manifests are typically consumed from a
// deployed artifact tree.
type ProdMode struct {
	ManifestPath string
}

func (DevMode) mode()  {}
func (ProdMode) mode() {}

// GetWidgetHTML returns the fully-resolved HTML document for a named
// widget. Both modes produce structurally equivalent documents for the same
// widget and effective base URL: same title, same mount element, same
// module script, absolute asset URLs.
func GetWidgetHTML(ctx context.Context, name string, mode Mode) (ResolvedWidgetHTML, error) {
	switch m := mode.(type) {
	case DevMode:
		return resolveFromDevServer(ctx, name, m.Server)
	case ProdMode:
		return resolveFromManifest(name, m.ManifestPath)
	default:
		return ResolvedWidgetHTML{}, fmt.Errorf("chatgpt-widgets: unsupported resolution mode %T", mode)
	}
}

// GetWidgets discovers the widgets in dir and resolves each one through
// mode. Results preserve discovery order. A failure resolving any widget
// aborts the whole call; no partial list is returned.
func GetWidgets(ctx context.Context, dir string, mode Mode) ([]WidgetInfo, error) {
	found, err := entry.Discover(dir)
	if err != nil {
		return nil, err
	}

	infos := make([]WidgetInfo, 0, len(found))
	for _, w := range found {
		resolved, err := GetWidgetHTML(ctx, w.Name, mode)
		if err != nil {
			return nil, fmt.Errorf("widget %q: %w", w.Name, err)
		}
		infos = append(infos, WidgetInfo{
			Name:     w.Name,
			FilePath: w.SourcePath,
			Content:  resolved.Content,
			Source:   resolved.Source,
		})
	}
	return infos, nil
}

// resolveFromDevServer drives the host's resolve/load/transform pipeline
// for one widget document, then rewrites virtual script srcs onto the
// host's browser route and absolutizes every root-relative URL.
func resolveFromDevServer(ctx context.Context, name string, srv DevServer) (ResolvedWidgetHTML, error) {
	htmlID := entry.HTMLEntryID(name)

	resolved, err := srv.ResolveID(ctx, htmlID)
	if err != nil {
		return ResolvedWidgetHTML{}, fmt.Errorf("resolve %s: %w", htmlID, err)
	}
	if resolved == "" {
		return ResolvedWidgetHTML{}, fmt.Errorf("%w: %s (is the %s plugin registered with the dev server?)", ErrUnresolved, htmlID, PluginName)
	}

	raw, err := srv.LoadModule(ctx, resolved)
	if err != nil {
		return ResolvedWidgetHTML{}, fmt.Errorf("load %s: %w", resolved, err)
	}
	if raw == "" {
		return ResolvedWidgetHTML{}, fmt.Errorf("%w: %s", ErrEmptyModule, resolved)
	}

	transformed, err := srv.TransformHTML(ctx, "/"+htmlID, raw)
	if err != nil {
		return ResolvedWidgetHTML{}, fmt.Errorf("transform %s: %w", htmlID, err)
	}

	// Textual substitution: point virtual entry module srcs at the host's
	// virtual-module route so the browser can fetch them.
	rewritten := strings.ReplaceAll(
		transformed,
		`src="`+entry.ScriptPrefix,
		`src="`+devIDPrefix+entry.ScriptPrefix,
	)

	base, err := effectiveBase(srv.Config())
	if err != nil {
		return ResolvedWidgetHTML{}, err
	}

	return ResolvedWidgetHTML{
		Content: urlx.Absolutize(rewritten, base),
		Source:  SourceDevServer,
	}, nil
}

// effectiveBase picks the absolute base for dev-mode absolutization: the
// plugin's own baseUrl option when configured, otherwise the host's base.
// The option is re-validated here even though ConfigResolved checked it;
// options introspected per call may differ from the ones validated at
// config time.
func effectiveBase(cfg ResolvedConfig) (string, error) {
	opts := introspectOptions(cfg)
	if opts.BaseURL != "" {
		if !urlx.IsAbsolute(opts.BaseURL) {
			return "", fmt.Errorf("%w: the baseUrl option %q is not an absolute URL", ErrNoBaseURL, opts.BaseURL)
		}
		return opts.BaseURL, nil
	}
	if urlx.IsAbsolute(cfg.Base) {
		return cfg.Base, nil
	}
	return "", fmt.Errorf("%w: the baseUrl plugin option is unset and the Vite base %q is not an absolute URL; set either one", ErrNoBaseURL, cfg.Base)
}

// introspectOptions recovers the plugin's options from the host's resolved
// plugin list. A missing or foreign-typed entry yields zero options, which
// falls back to the host base.
func introspectOptions(cfg ResolvedConfig) Options {
	for _, info := range cfg.Plugins {
		if info.Name != PluginName {
			continue
		}
		if opts, ok := info.Options.(Options); ok {
			return opts
		}
	}
	return Options{}
}
