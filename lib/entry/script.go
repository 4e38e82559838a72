package entry

import (
	"bytes"
	"fmt"
	"text/template"
)

// ScriptOptions configures script entry synthesis for one widget.
type ScriptOptions struct {
	// Name is the widget name, used in the mount failure message.
	Name string
	// SourcePath is the resolved on-disk path of the widget component.
	SourcePath string
	// LayoutPath, when non-empty, is the resolved path of the layout
	// component that wraps the widget.
	LayoutPath string
	// HMRBootstrap, when non-empty, is a module specifier imported before
	// anything else so the live-reload runtime is installed first.
	HMRBootstrap string
}

// The entry module mounts the widget into the document synthesized by
// Document. When a layout participates, the layout import precedes the
// widget import and the widget renders as the layout's single child; that
// ordering puts layout styles before widget styles in the rendered
// document, so widget rules can override layout rules.
var scriptTemplate = template.Must(template.New("entrypoint").Parse(`{{if .HMRBootstrap}}import "{{.HMRBootstrap}}";
{{end}}import { createRoot } from "react-dom/client";
import { createElement } from "react";
{{if .LayoutPath}}import Layout from "{{.LayoutPath}}";
{{end}}import Widget from "{{.SourcePath}}";

const container = document.getElementById("root");
if (!container) {
  throw new Error("chatgpt-widgets: mount element #root missing in {{.Name}} document");
}

const root = createRoot(container);
{{if .LayoutPath}}root.render(createElement(Layout, null, createElement(Widget)));
{{else}}root.render(createElement(Widget));
{{end}}`))

// SynthesizeScript renders the virtual entry module for a widget.
func SynthesizeScript(opts ScriptOptions) (string, error) {
	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, opts); err != nil {
		return "", fmt.Errorf("render widget entry module %q: %w", opts.Name, err)
	}
	return buf.String(), nil
}
