package widgets

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TestHost is an in-memory stand-in for the host dev server, wired directly
// to a single Plugin instance. It implements DevServer by dispatching
// ResolveID and LoadModule to the plugin's hooks and applying the plugin's
// TransformHTML descriptors, so the dev-mode resolution path can be
// exercised without a real bundler.
//
//	p := widgets.New(widgets.Options{WidgetsDir: dir, BaseURL: base})
//	host, err := widgets.NewTestHost(p, widgets.ResolvedConfig{Root: root})
//	html, err := widgets.GetWidgetHTML(ctx, "TestWidget", widgets.DevMode{Server: host})
//
// TestHost is test and tooling support only; it performs no bundling, file
// watching, or module graph maintenance.
type TestHost struct {
	plugin *Plugin
	cfg    ResolvedConfig
}

// NewTestHost runs cfg through the plugin's Config and ConfigResolved hooks
// and returns a host serving that configuration. Command defaults to
// CommandServe, and the plugin is appended to cfg.Plugins (with its options
// published) when not already listed.
func NewTestHost(plugin *Plugin, cfg ResolvedConfig) (*TestHost, error) {
	if cfg.Command == "" {
		cfg.Command = CommandServe
	}
	registered := false
	for _, info := range cfg.Plugins {
		if info.Name == PluginName {
			registered = true
			break
		}
	}
	if !registered {
		cfg.Plugins = append(cfg.Plugins, PluginInfo{Name: PluginName, Options: plugin.Options()})
	}

	plugin.Config(&cfg)
	if err := plugin.ConfigResolved(cfg); err != nil {
		return nil, err
	}
	return &TestHost{plugin: plugin, cfg: cfg}, nil
}

// Config returns the host's resolved configuration.
func (h *TestHost) Config() ResolvedConfig { return h.cfg }

// ResolveID dispatches to the plugin's resolve hook. Unclaimed ids resolve
// to "", matching a host whose resolution chain found nothing.
func (h *TestHost) ResolveID(_ context.Context, id string) (string, error) {
	if resolved, ok := h.plugin.ResolveID(id); ok {
		return resolved, nil
	}
	return "", nil
}

// LoadModule dispatches to the plugin's load hook.
func (h *TestHost) LoadModule(ctx context.Context, id string) (string, error) {
	content, ok, err := h.plugin.Load(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("chatgpt-widgets: no loader for module %q", id)
	}
	return content, nil
}

// TransformHTML applies the plugin's post-HTML hook to the document,
// injecting any returned tag descriptors.
func (h *TestHost) TransformHTML(_ context.Context, url, html string) (string, error) {
	for _, tag := range h.plugin.TransformHTML(url) {
		html = injectTag(html, tag)
	}
	return html, nil
}

// injectTag splices a rendered tag into the document at its requested
// position.
func injectTag(html string, tag HTMLTag) string {
	rendered := renderTag(tag)
	switch tag.InjectTo {
	case InjectBodyPrepend:
		return injectAfter(html, "<body>", rendered)
	default:
		return injectAfter(html, "<head>", rendered)
	}
}

func injectAfter(html, marker, insert string) string {
	idx := strings.Index(html, marker)
	if idx < 0 {
		return insert + html
	}
	at := idx + len(marker)
	return html[:at] + "\n" + insert + html[at:]
}

func renderTag(tag HTMLTag) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag.Tag)
	keys := make([]string, 0, len(tag.Attrs))
	for k := range tag.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%q", k, tag.Attrs[k])
	}
	b.WriteString(">")
	b.WriteString(tag.Children)
	b.WriteString("</")
	b.WriteString(tag.Tag)
	b.WriteString(">")
	return b.String()
}
