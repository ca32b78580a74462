// Package streams turns source hosts into playable streams.
package streams

import (
	"context"
	"errors"
	"fmt"

	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
)

// ErrNoExtractor is returned for hosts no extractor recognizes.
var ErrNoExtractor = errors.New("no extractor for host")

// Extractor resolves a host URL into streams.
type Extractor interface {
	Name() string
	Match(url string) bool
	Extract(ctx context.Context, url string) ([]source.Stream, error)
}

// Extractors is an ordered list. The first match wins.
type Extractors []Extractor

// Default returns the built-in extractors.
func Default(fetcher network.Fetcher) Extractors {
	return Extractors{
		HLS{Fetcher: fetcher},
		Direct{},
	}
}

// For returns the first extractor matching url.
func (e Extractors) For(url string) (Extractor, bool) {
	return lo.Find(e, func(x Extractor) bool { return x.Match(url) })
}

// Extract resolves every host and returns the streams best first, without duplicate URLs.
// Hosts that fail are logged and skipped; the error is returned only when nothing was found.
func (e Extractors) Extract(ctx context.Context, hosts []source.Host) ([]source.Stream, error) {
	var (
		streams []source.Stream
		errs    []error
	)

	for _, host := range hosts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		extractor, ok := e.For(host.URL)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNoExtractor, host.URL))
			continue
		}

		found, err := extractor.Extract(ctx, host.URL)
		if err != nil {
			log.With(log.Fields{"extractor": extractor.Name(), "url": host.URL}).Warn(err)
			errs = append(errs, fmt.Errorf("%s: %w", extractor.Name(), err))
			continue
		}

		streams = append(streams, found...)
	}

	streams = lo.UniqBy(streams, source.Stream.ID)
	if len(streams) == 0 {
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		return nil, source.ErrNoContent
	}

	source.SortStreams(streams)
	return streams, nil
}
