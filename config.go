package widgets

// DefaultWidgetsDir is the widgets directory used when Options.WidgetsDir
// is empty, relative to the host project root.
const DefaultWidgetsDir = "web/chatgpt-widgets"

// Options configures a Plugin instance. Both fields are read once at plugin
// construction and config resolution; there is no runtime reconfiguration.
type Options struct {
	// WidgetsDir is the directory scanned for widget component files,
	// relative to the host project root. Defaults to DefaultWidgetsDir.
	WidgetsDir string

	// BaseURL, when set, must be an absolute URL. Built asset references
	// are rewritten under it so the sandboxed embedding host can load them.
	// When unset, the host's own base must be absolute instead; neither
	// being absolute fails the build at config resolution.
	BaseURL string
}

func (o Options) withDefaults() Options {
	if o.WidgetsDir == "" {
		o.WidgetsDir = DefaultWidgetsDir
	}
	return o
}
