// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Resolver is the canonical application identifier used for filesystem paths and CLI branding.
	Resolver = "resolver"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for network requests to external providers.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// PlaceholderPoster is substituted whenever a provider omits the poster of a catalog entry.
	PlaceholderPoster = "https://eticketsolutions.com/demo/themes/e-ticket/img/movie.jpg"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = ""
	BuiltBy  = ""
	Revision = ""
)
