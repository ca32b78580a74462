package streams

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/quality"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// HLS probes playlists. A master playlist yields itself as an auto stream plus one stream
// per variant, rated by the variant resolution. A media playlist yields a single stream.
type HLS struct {
	Fetcher network.Fetcher
	Headers map[string]string
}

func (HLS) Name() string {
	return "hls"
}

func (HLS) Match(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".m3u8")
}

func (h HLS) Extract(ctx context.Context, rawURL string) ([]source.Stream, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrWrongURL, err)
	}

	fetcher := h.Fetcher
	if fetcher == nil {
		fetcher = network.HTTPFetcher{}
	}

	body, err := fetcher.Fetch(ctx, rawURL, h.Headers)
	if err != nil {
		return nil, err
	}

	playlist, listType, err := m3u8.DecodeFrom(bytes.NewReader(body), false)
	if err != nil {
		return nil, &source.DecodeError{URL: rawURL, Cause: err}
	}

	if listType != m3u8.MASTER {
		return []source.Stream{source.NewStream(h.Name(), rawURL, mo.None[quality.Quality](), h.Headers)}, nil
	}

	master := playlist.(*m3u8.MasterPlaylist)
	variants := lo.FilterMap(master.Variants, func(v *m3u8.Variant, _ int) (source.Stream, bool) {
		if v == nil || v.URI == "" || v.Iframe {
			return source.Stream{}, false
		}

		ref, err := url.Parse(v.URI)
		if err != nil {
			return source.Stream{}, false
		}

		stream := source.NewStream(h.Name(), base.ResolveReference(ref).String(), mo.None[quality.Quality](), h.Headers)
		if q, ok := quality.FromHeight(height(v.Resolution)).Get(); ok {
			stream = stream.WithQuality(q)
		}
		return stream, true
	})

	auto := source.NewStream(h.Name(), rawURL, mo.Some(quality.Auto), h.Headers)
	return append(variants, auto), nil
}

// height reads the second dimension of a WIDTHxHEIGHT resolution.
func height(resolution string) int {
	_, h, found := strings.Cut(resolution, "x")
	if !found {
		return 0
	}
	n, err := strconv.Atoi(h)
	if err != nil {
		return 0
	}
	return n
}
