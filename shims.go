package widgets

import "github.com/gadget-inc/vite-plugin-chatgpt-widgets/lib/entry"

// Widget documents load as bare module entries, outside the host
// application's own HTML. The refresh and routing runtimes both assume
// globals that the application shell normally pre-declares; without them
// the widget module throws on load. These inline, non-module scripts
// pre-declare those globals ahead of any module script in the document.

// reactRefreshShim pre-declares the three hooks the refresh runtime
// expects. Injected when the refresh plugin is active without a
// client-routing plugin.
const reactRefreshShim = `window.$RefreshReg$ = () => {};
window.$RefreshSig$ = () => (type) => type;
window.__vite_plugin_react_preamble_installed__ = true;`

// clientRoutingShim pre-declares the routing runtime's globals as safe
// no-ops. Injected when a client-routing plugin is present; its own HMR
// runtime then takes over.
const clientRoutingShim = `window.__reactRouterRouteModules = window.__reactRouterRouteModules || {};
window.__reactRouterManifest = window.__reactRouterManifest || { routes: {} };
window.__reactRouterContext = window.__reactRouterContext || { isSpaMode: true };`

// TransformHTML is the post-HTML hook, applied after the host's own HTML
// pipeline in serve mode. For the plugin's own widget documents it injects
// exactly one of the two bootstrap shims, never both; other documents and
// build-mode transforms are left alone.
func (p *Plugin) TransformHTML(url string) []HTMLTag {
	if p.state.command != CommandServe {
		return nil
	}
	eid, ok := entry.ParseID(trimLeadingSlash(url))
	if !ok || eid.Kind != entry.KindHTML {
		return nil
	}

	switch {
	case p.state.caps.HasClientRouting:
		return []HTMLTag{{Tag: "script", Children: clientRoutingShim, InjectTo: InjectHeadPrepend}}
	case p.state.caps.HasReactRefresh:
		return []HTMLTag{{Tag: "script", Children: reactRefreshShim, InjectTo: InjectHeadPrepend}}
	}
	return nil
}

func trimLeadingSlash(s string) string {
	if len(s) > 0 && s[0] == '/' {
		return s[1:]
	}
	return s
}
