// Package source defines the canonical content model and the contract every provider adapter satisfies.
package source

import (
	"context"

	"github.com/resolver-cli/resolver/identity"
)

// Source is the contract of a provider adapter, whether it runs in-process or on a remote host.
// Every method performs network I/O and honours ctx cancellation.
type Source interface {
	// Name is the display name of the provider.
	Name() string

	// ID identifies the provider. Every entry the source returns carries it.
	ID() identity.Provider

	// LatestMovies lists recently added movies. Pages start at 1.
	LatestMovies(ctx context.Context, page int) ([]Entry, error)

	// LatestShows lists recently added shows. Pages start at 1.
	LatestShows(ctx context.Context, page int) ([]Entry, error)

	// Search queries the catalog.
	Search(ctx context.Context, keyword string, page int) ([]Entry, error)

	// Home lists the sections of the provider's landing page.
	Home(ctx context.Context) ([]Section, error)

	// MovieDetails resolves a movie page into its source hosts.
	MovieDetails(ctx context.Context, url string) (Movie, error)

	// ShowDetails resolves a show page into its seasons and episodes.
	// Seasons without episodes are omitted; any failed season fetch fails the call.
	ShowDetails(ctx context.Context, url string) (Show, error)
}
