// Package widgets exposes individually-bundled widget entrypoints from a
// component-based web UI project for embedding in a sandboxed iframe host.
//
// The package has two halves that share one contract:
//
//   - Plugin is the build-time half. Registered with a Vite-style host
//     bundler, it discovers widget component files in a directory,
//     synthesizes a virtual HTML document and entry module per widget, and
//     injects the HTML documents as extra build entry points. Virtual
//     modules never exist on disk; the plugin's resolve and load hooks
//     answer for them.
//
//   - GetWidgetHTML and GetWidgets are the run-time half, called by an
//     embedding application to obtain the finished HTML for a named widget.
//     In dev mode they drive the host's live transform pipeline; in
//     production they look the widget up in the bundler's manifest and read
//     the built artifact from disk.
//
// # Widgets and layouts
//
// A widget is a single component file (.tsx, .ts, .jsx or .js) in the
// widgets directory; its name is the filename stem. A file named root.* in
// the same directory is a layout component: every widget renders nested
// inside it, and it is never a widget itself.
//
// # The dual-mode contract
//
// For a given widget and effective base URL, the dev-server and manifest
// paths must produce structurally equivalent documents: same title, same
// mount element, same module script, all asset URLs absolute. The bytes
// differ (virtual ids in dev, hashed filenames in production) but an
// embedding host cannot tell the modes apart. Absolute URLs are mandatory
// because the sandboxed iframe host cannot resolve root-relative paths
// against its own origin; the base URL precondition is validated eagerly at
// config resolution and again on every dev-mode request.
//
// # Registering the plugin
//
//	p := widgets.New(widgets.Options{
//	    WidgetsDir: "web/chatgpt-widgets",
//	    BaseURL:    "https://assets.example.com/",
//	})
//
// The host invokes Config, ConfigResolved, Entries, ResolveID, Load and
// TransformHTML over its lifecycle, in that order. All plugin state is
// written during those steps and read-only afterwards.
//
// # Resolving widget HTML
//
//	html, err := widgets.GetWidgetHTML(ctx, "TestWidget", widgets.DevMode{Server: srv})
//	html, err := widgets.GetWidgetHTML(ctx, "TestWidget", widgets.ProdMode{ManifestPath: "dist/.vite/manifest.json"})
//
// The production manifest path is resolved against the process working
// directory, not the build root: manifests are typically consumed from a
// deployed artifact tree rather than the original source tree.
package widgets
