// Package urlx provides the URL checks and HTML URL rewriting used when
// preparing widget documents for a sandboxed embedding host.
//
// The embedding host loads widget HTML inside a sandboxed iframe whose
// origin cannot resolve root-relative paths, so every asset reference in a
// finished document must be a fully-qualified URL. Absolutize performs that
// rewrite; IsAbsolute is the validation gate applied to base URLs before
// they are trusted.
package urlx

import (
	"net/url"
	"regexp"
	"strings"
)

// IsAbsolute reports whether raw is an absolute URL, meaning it parses and
// carries both a scheme and a host. Strings such as "/path", "path" or
// "example.com/path" are not absolute. Parse failures are reported as false,
// never as an error.
func IsAbsolute(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Root-relative references inside script src and link href attributes.
// Only these two shapes are rewritten; the synthesizer controls the input
// HTML, so a full DOM parse is unnecessary.
var (
	scriptSrcPattern = regexp.MustCompile(`(<script\b[^>]*\bsrc=")/`)
	linkHrefPattern  = regexp.MustCompile(`(<link\b[^>]*\bhref=")/`)
)

// Absolutize rewrites root-relative src and href attributes in html so that
// they point under baseURL. The base is normalized to end with a single "/".
//
// Already-absolute URLs, relative (non-"/"-prefixed) paths, and import
// specifiers inside inline script bodies are left untouched; the browser
// resolves module-internal imports against the module URL itself. Because
// the rewrite only matches a leading "/", running Absolutize twice with the
// same base yields the same output.
func Absolutize(html, baseURL string) string {
	base := baseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	html = scriptSrcPattern.ReplaceAllStringFunc(html, func(m string) string {
		return strings.TrimSuffix(m, "/") + base
	})
	html = linkHrefPattern.ReplaceAllStringFunc(html, func(m string) string {
		return strings.TrimSuffix(m, "/") + base
	})
	return html
}
