// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Provider Registry - these keys govern how provider identities are resolved to adapters.
const (
	ProvidersRegistry    = "providers.registry"
	ProvidersForceRemote = "providers.force_remote"
	ProvidersDefault     = "providers.default"
)

// Fetching - these keys tune the concurrent expansion of shows into seasons.
const (
	FetchSeasonConcurrency = "fetch.season_concurrency"
)

// Network - these keys configure the shared HTTP transport.
const (
	NetworkTimeout = "network.timeout"
)

// Listing Cache - these keys control how long provider listings are reused.
const (
	CacheTTL = "cache.ttl"
)

// Remote Execution Host - these keys configure the `serve` command.
const (
	ServeAddress = "serve.address"
)

// Built-in Adapters - per-adapter settings.
const (
	MovieboxURL = "moviebox.url"
)

// Search Interaction - these keys define the UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of CLI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the application output.
const (
	CliColored = "cli.colored"
)
