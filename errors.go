package widgets

import "errors"

// Sentinel errors for widget resolution. Every failure is fatal to the
// current operation and propagates to the caller; nothing is retried.
var (
	// ErrNoBaseURL indicates that neither the plugin baseUrl option nor the
	// host's base is an absolute URL.
	ErrNoBaseURL = errors.New("chatgpt-widgets: no absolute base URL configured")
	// ErrUnresolved indicates the host's module resolver returned nothing
	// for a constructed virtual id, which points at a wiring mismatch
	// between discovery and hook registration.
	ErrUnresolved = errors.New("chatgpt-widgets: virtual module did not resolve")
	// ErrEmptyModule indicates the host's module loader returned no content
	// for a resolved virtual id.
	ErrEmptyModule = errors.New("chatgpt-widgets: virtual module loaded empty")
	// ErrManifestMissing indicates the production manifest file is absent.
	ErrManifestMissing = errors.New("chatgpt-widgets: Vite manifest not found")
	// ErrManifestEntry indicates the widget has no entry in an otherwise
	// valid manifest.
	ErrManifestEntry = errors.New("chatgpt-widgets: widget not found in Vite manifest")
	// ErrArtifactMissing indicates the manifest claims the widget was built
	// but the HTML file is absent on disk, a packaging defect rather than a
	// usage error.
	ErrArtifactMissing = errors.New("chatgpt-widgets: built widget HTML missing")
)

// IsConfigError checks if err stems from missing base URL configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNoBaseURL)
}

// IsManifestError checks if err stems from the production manifest: the
// file missing, the widget missing from it, or the built artifact missing.
func IsManifestError(err error) bool {
	return errors.Is(err, ErrManifestMissing) || errors.Is(err, ErrManifestEntry) || errors.Is(err, ErrArtifactMissing)
}
