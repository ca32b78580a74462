package source

import (
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/resolver-cli/resolver/quality"
	"github.com/samber/mo"
)

// Stream is a playable candidate. Two streams with the same URL are the same stream.
// Streams are values: the With* methods return modified copies.
type Stream struct {
	// Resolver names the extractor or provider the stream originates from.
	Resolver  string            `json:"resolver"`
	URL       string            `json:"url"`
	Quality   quality.Quality   `json:"quality"`
	Headers   map[string]string `json:"headers,omitempty"`
	Subtitles []Subtitle        `json:"subtitles"`
}

// NewStream builds a stream, inferring the quality from the URL when q is None.
func NewStream(resolver, streamURL string, q mo.Option[quality.Quality], headers map[string]string, subtitles ...Subtitle) Stream {
	return Stream{
		Resolver:  resolver,
		URL:       streamURL,
		Quality:   q.OrElse(quality.FromURL(streamURL)),
		Headers:   headers,
		Subtitles: append([]Subtitle{}, subtitles...),
	}
}

// ID is the identity of the stream.
func (s Stream) ID() string {
	return s.URL
}

// WithSubtitles returns the same stream with a different subtitle set.
func (s Stream) WithSubtitles(subtitles []Subtitle) Stream {
	s.Subtitles = append([]Subtitle{}, subtitles...)
	return s
}

// WithQuality returns the same stream with a different quality, e.g. once a manifest was probed.
func (s Stream) WithQuality(q quality.Quality) Stream {
	s.Quality = q
	return s
}

// IsSimple reports whether the stream can be requested without custom headers.
func (s Stream) IsSimple() bool {
	return len(s.Headers) == 0
}

// PlayerCompatible reports whether a generic player can open the stream: no custom headers and
// not a segmented playlist. The check looks at the path extension only.
func (s Stream) PlayerCompatible() bool {
	if !s.IsSimple() {
		return false
	}
	switch extension(s.URL) {
	case "m3u8", "m3u":
		return false
	default:
		return true
	}
}

func extension(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	return strings.TrimPrefix(path.Ext(p), ".")
}

// SortStreams orders streams best quality first. Equal qualities keep their order.
func SortStreams(streams []Stream) {
	slices.SortStableFunc(streams, func(a, b Stream) int {
		return quality.Compare(b.Quality, a.Quality)
	})
}

// Best returns the highest ranked stream.
func Best(streams []Stream) mo.Option[Stream] {
	if len(streams) == 0 {
		return mo.None[Stream]()
	}
	sorted := slices.Clone(streams)
	SortStreams(sorted)
	return mo.Some(sorted[0])
}
