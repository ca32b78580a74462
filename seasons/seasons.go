// Package seasons expands a show into its seasons concurrently.
//
// Each season is fetched independently. Completion order is irrelevant: the result is always
// ordered by season number. Seasons without episodes are dropped, but a failed fetch fails the
// whole expansion and cancels the fetches still in flight.
package seasons

import (
	"context"
	"fmt"

	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// FetchFunc retrieves the episodes of season number n (1-based).
type FetchFunc func(ctx context.Context, n int) ([]source.Episode, error)

// Gather fetches seasons 1..count of the show at showURL with at most limit fetches in flight.
// A limit of zero or less allows all of them at once.
func Gather(ctx context.Context, showURL string, count, limit int, fetch FetchFunc) ([]source.Season, error) {
	if count <= 0 {
		return []source.Season{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	results := make([]source.Season, count)
	for i := range results {
		number := i + 1
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			episodes, err := fetch(ctx, number)
			if err != nil {
				return fmt.Errorf("season %d: %w", number, err)
			}

			results[i] = source.Season{Number: number, URL: showURL, Episodes: episodes}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return lo.Filter(results, func(s source.Season, _ int) bool {
		return len(s.Episodes) > 0
	}), nil
}
