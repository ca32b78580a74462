// Package moviebox is the built-in adapter for the Moviebox JSON API.
package moviebox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/seasons"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
)

// Name is the adapter name used in local identities.
const Name = "moviebox"

const (
	boxTypeMovie  = 1
	boxTypeBanner = 6

	// skippedHomeSections is the number of leading home sections that are banners, not catalog rows.
	skippedHomeSections = 2
)

// Options configure the adapter.
type Options struct {
	BaseURL           string
	Fetcher           network.Fetcher
	SeasonConcurrency int
}

// Provider implements source.Source for Moviebox.
type Provider struct {
	base              *url.URL
	fetcher           network.Fetcher
	seasonConcurrency int
}

// New validates options and returns the adapter.
func New(options Options) (*Provider, error) {
	base, err := url.Parse(options.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("moviebox: invalid base url %q", options.BaseURL)
	}

	fetcher := options.Fetcher
	if fetcher == nil {
		fetcher = network.HTTPFetcher{}
	}

	return &Provider{
		base:              base,
		fetcher:           fetcher,
		seasonConcurrency: options.SeasonConcurrency,
	}, nil
}

func (p *Provider) Name() string {
	return "Moviebox"
}

func (p *Provider) ID() identity.Provider {
	return identity.Local(Name)
}

func (p *Provider) url(segments ...string) string {
	return p.base.JoinPath(segments...).String()
}

func (p *Provider) LatestMovies(ctx context.Context, page int) ([]source.Entry, error) {
	return p.listing(ctx, p.url("movies", strconv.Itoa(page)))
}

func (p *Provider) LatestShows(ctx context.Context, page int) ([]source.Entry, error) {
	return p.listing(ctx, p.url("tvshows", strconv.Itoa(page)))
}

// Search ignores page: the API returns a single page of results.
func (p *Provider) Search(ctx context.Context, keyword string, _ int) ([]source.Entry, error) {
	return p.listing(ctx, p.url("search", strings.ReplaceAll(keyword, " ", "-")))
}

func (p *Provider) Home(ctx context.Context) ([]source.Section, error) {
	var response homeResponse
	if err := p.get(ctx, p.url("home"), &response); err != nil {
		return nil, err
	}

	if len(response.Data) <= skippedHomeSections {
		return nil, source.ErrNoContent
	}

	return lo.FilterMap(response.Data[skippedHomeSections:], func(s homeSection, _ int) (source.Section, bool) {
		if s.BoxType == boxTypeBanner || len(s.List) == 0 {
			return source.Section{}, false
		}
		return source.Section{Title: s.Name, Entries: lo.Map(s.List, p.entry)}, true
	}), nil
}

func (p *Provider) MovieDetails(ctx context.Context, rawURL string) (source.Movie, error) {
	id, err := lastSegment(rawURL)
	if err != nil {
		return source.Movie{}, err
	}

	var response detailResponse
	if err := p.get(ctx, rawURL, &response); err != nil {
		return source.Movie{}, err
	}

	return source.Movie{
		Entry: source.Entry{
			Title:    response.Data.Title,
			URL:      rawURL,
			Poster:   source.PosterOrPlaceholder(response.Data.Poster),
			Kind:     source.KindMovie,
			Provider: p.ID(),
		},
		Sources: []source.Host{{URL: p.url("movie", "play", id)}},
	}, nil
}

func (p *Provider) ShowDetails(ctx context.Context, rawURL string) (source.Show, error) {
	id, err := lastSegment(rawURL)
	if err != nil {
		return source.Show{}, err
	}

	var response detailResponse
	if err := p.get(ctx, rawURL, &response); err != nil {
		return source.Show{}, err
	}

	if response.Data.MaxSeason == nil {
		return source.Show{}, source.ErrEpisodeURLNotFound
	}

	list, err := seasons.Gather(ctx, rawURL, *response.Data.MaxSeason, p.seasonConcurrency, func(ctx context.Context, n int) ([]source.Episode, error) {
		return p.season(ctx, id, n)
	})
	if err != nil {
		return source.Show{}, err
	}

	return source.Show{
		Entry: source.Entry{
			Title:    response.Data.Title,
			URL:      rawURL,
			Poster:   source.PosterOrPlaceholder(response.Data.Poster),
			Kind:     source.KindShow,
			Provider: p.ID(),
		},
		Seasons: list,
	}, nil
}

func (p *Provider) season(ctx context.Context, id string, number int) ([]source.Episode, error) {
	var response seasonResponse
	if err := p.get(ctx, p.url("tvshow", id, strconv.Itoa(number)), &response); err != nil {
		return nil, err
	}

	return lo.Map(response.Data, func(e episodeRow, _ int) source.Episode {
		return source.Episode{
			Number:  e.Episode,
			Sources: []source.Host{{URL: p.url("tvshow", "play", id, strconv.Itoa(number), strconv.Itoa(e.Episode))}},
		}
	}), nil
}

func (p *Provider) listing(ctx context.Context, target string) ([]source.Entry, error) {
	var response listingResponse
	if err := p.get(ctx, target, &response); err != nil {
		return nil, err
	}
	return lo.Map(response.Data, p.entry), nil
}

func (p *Provider) entry(row datum, _ int) source.Entry {
	kind, segment := source.KindShow, "tvshow"
	if row.BoxType == boxTypeMovie {
		kind, segment = source.KindMovie, "movie"
	}

	return source.Entry{
		Title:    row.Title,
		URL:      p.url(segment, strconv.Itoa(row.ID)),
		Poster:   source.PosterOrPlaceholder(row.Poster),
		Kind:     kind,
		Provider: p.ID(),
	}
}

func (p *Provider) get(ctx context.Context, target string, v any) error {
	body, err := p.fetcher.Fetch(ctx, target, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &source.DecodeError{URL: target, Cause: err}
	}
	return nil
}

func lastSegment(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Join(source.ErrWrongURL, err)
	}
	segment := u.Path[strings.LastIndex(u.Path, "/")+1:]
	if segment == "" {
		return "", fmt.Errorf("%w: %s", source.ErrWrongURL, rawURL)
	}
	return segment, nil
}
