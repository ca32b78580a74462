package streams

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/resolver-cli/resolver/quality"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var mediaExtensions = []string{".mp4", ".mkv", ".webm", ".m3u8"}

// Direct accepts URLs that already point at a media file.
type Direct struct{}

func (Direct) Name() string {
	return "direct"
}

func (Direct) Match(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return false
	}
	return lo.Contains(mediaExtensions, strings.ToLower(path.Ext(u.Path)))
}

func (d Direct) Extract(_ context.Context, rawURL string) ([]source.Stream, error) {
	if !d.Match(rawURL) {
		return nil, source.ErrWrongURL
	}
	return []source.Stream{source.NewStream(d.Name(), rawURL, mo.None[quality.Quality](), nil)}, nil
}
