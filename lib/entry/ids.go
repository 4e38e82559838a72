package entry

import "strings"

// Virtual module id grammar. HTML entries and script entries live in two
// namespaces under a shared "virtual:chatgpt-widget" prefix. The production
// manifest persists HTML entry ids as lookup keys, so the name -> id mapping
// must stay bijective and stable for the lifetime of a build.
const (
	// HTMLPrefix is the id prefix for synthesized widget HTML documents.
	HTMLPrefix = "virtual:chatgpt-widget-html-"
	// ScriptPrefix is the id prefix for synthesized widget entry modules.
	ScriptPrefix = "virtual:chatgpt-widget-entrypoint-"

	htmlSuffix   = ".html"
	scriptSuffix = ".js"

	// PrivateMarker prefixes script entry ids when they are registered with
	// the bundler, so the bundler never tries to read them from disk. It is
	// never exposed to the browser.
	PrivateMarker = "\x00"
)

// Kind distinguishes the two virtual entry namespaces.
type Kind int

const (
	// KindHTML is a synthesized widget HTML document entry.
	KindHTML Kind = iota + 1
	// KindScript is a synthesized widget entry module.
	KindScript
)

// ID is a parsed virtual module id. Hook code parses raw ids into an ID at
// the boundary and operates on structured data from there on.
type ID struct {
	Kind Kind
	Name string
}

// HTMLEntryID returns the HTML entry id for a widget name.
func HTMLEntryID(name string) string {
	return HTMLPrefix + name + htmlSuffix
}

// ScriptEntryID returns the script entry id for a widget name.
func ScriptEntryID(name string) string {
	return ScriptPrefix + name + scriptSuffix
}

// String renders the id back into its wire form.
func (id ID) String() string {
	switch id.Kind {
	case KindHTML:
		return HTMLEntryID(id.Name)
	case KindScript:
		return ScriptEntryID(id.Name)
	}
	return ""
}

// ParseID parses a raw module id into an ID. A leading private marker is
// tolerated, as the load hook receives script ids in their marked form.
// The second return is false for ids outside the widget grammar.
func ParseID(raw string) (ID, bool) {
	raw = strings.TrimPrefix(raw, PrivateMarker)
	if name, ok := trimAffixes(raw, HTMLPrefix, htmlSuffix); ok {
		return ID{Kind: KindHTML, Name: name}, true
	}
	if name, ok := trimAffixes(raw, ScriptPrefix, scriptSuffix); ok {
		return ID{Kind: KindScript, Name: name}, true
	}
	return ID{}, false
}

func trimAffixes(s, prefix, suffix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(s, prefix), suffix)
	if name == "" {
		return "", false
	}
	return name, true
}
