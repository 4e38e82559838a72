package widgets

import "context"

// This file specifies the surface of the host bundler that the plugin and
// resolver depend on. The bundler itself is an external collaborator: it
// owns module resolution, the HTML transform pipeline, asset hashing and
// the manifest written at build time.

// Command is the host build command.
type Command string

const (
	// CommandServe is the host's on-demand compilation and live-reload
	// serving mode.
	CommandServe Command = "serve"
	// CommandBuild is a finished, pre-bundled production build.
	CommandBuild Command = "build"
)

// PluginInfo describes a plugin registered with the host, exposed through
// the host's config introspection surface. Options carries the plugin's own
// option value when the plugin publishes one.
type PluginInfo struct {
	Name    string
	Options any
}

// ResolvedConfig is the host's effective configuration after all plugins
// have contributed to it. The plugin treats it as read-only once its
// ConfigResolved hook has run.
type ResolvedConfig struct {
	// Root is the absolute project root directory.
	Root string
	// Base is the host's public base path or URL.
	Base string
	// Command distinguishes live serving from a production build.
	Command Command
	// OptimizeDeps lists dependencies registered for pre-bundling.
	OptimizeDeps []string
	// Plugins lists the registered plugins in order.
	Plugins []PluginInfo
}

// DevServer is the live dev-server handle consumed by the dev-mode
// resolution path. Implementations wire these calls into the host's module
// graph and HTML transform pipeline.
type DevServer interface {
	// Config returns the host's resolved configuration.
	Config() ResolvedConfig
	// ResolveID runs a module id through the host's resolution chain and
	// returns the resolved id, or "" if nothing claimed it.
	ResolveID(ctx context.Context, id string) (string, error)
	// LoadModule returns the raw content for a resolved module id.
	LoadModule(ctx context.Context, id string) (string, error)
	// TransformHTML runs a document through the host's full HTML transform
	// pipeline, addressed by url as the current-URL context.
	TransformHTML(ctx context.Context, url, html string) (string, error)
}

// InjectPosition addresses where an injected HTMLTag lands in the document.
type InjectPosition string

const (
	// InjectHeadPrepend inserts at the start of <head>, ahead of any module
	// scripts in the document.
	InjectHeadPrepend InjectPosition = "head-prepend"
	// InjectBodyPrepend inserts at the start of <body>.
	InjectBodyPrepend InjectPosition = "body-prepend"
)

// HTMLTag is a tag descriptor returned from the TransformHTML hook. The
// host renders and injects descriptors instead of the hook splicing strings
// into the document, so transforms from several plugins compose.
type HTMLTag struct {
	Tag      string
	Attrs    map[string]string
	Children string
	InjectTo InjectPosition
}
