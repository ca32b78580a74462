package source

import (
	"context"

	"github.com/resolver-cli/resolver/identity"
	"github.com/samber/lo"
)

// Guard wraps src so that its results honour the contract whatever the adapter does:
// every entry carries a poster and the provider identity, home sections and seasons
// are never empty. Errors pass through untouched.
func Guard(src Source) Source {
	if g, ok := src.(*guarded); ok {
		return g
	}
	return &guarded{src: src}
}

// As identifies the results of src as id. Used when a logically local adapter
// is served through another dispatch path.
func As(src Source, id identity.Provider) Source {
	return &guarded{src: Guard(src), id: id}
}

// Close releases what src holds, such as a script interpreter. Sources without
// resources are left alone.
func Close(src Source) {
	if g, ok := src.(*guarded); ok {
		Close(g.src)
		return
	}
	if c, ok := src.(interface{ Close() }); ok {
		c.Close()
	}
}

type guarded struct {
	src Source
	id  identity.Provider
}

func (g *guarded) Name() string {
	return g.src.Name()
}

func (g *guarded) ID() identity.Provider {
	if !g.id.IsZero() {
		return g.id
	}
	return g.src.ID()
}

func (g *guarded) entry(e Entry) Entry {
	e.Poster = PosterOrPlaceholder(e.Poster)
	e.Provider = g.ID()
	return e
}

func (g *guarded) entries(entries []Entry) []Entry {
	return lo.Map(entries, func(e Entry, _ int) Entry { return g.entry(e) })
}

func (g *guarded) LatestMovies(ctx context.Context, page int) ([]Entry, error) {
	entries, err := g.src.LatestMovies(ctx, page)
	if err != nil {
		return nil, err
	}
	return g.entries(entries), nil
}

func (g *guarded) LatestShows(ctx context.Context, page int) ([]Entry, error) {
	entries, err := g.src.LatestShows(ctx, page)
	if err != nil {
		return nil, err
	}
	return g.entries(entries), nil
}

func (g *guarded) Search(ctx context.Context, keyword string, page int) ([]Entry, error) {
	entries, err := g.src.Search(ctx, keyword, page)
	if err != nil {
		return nil, err
	}
	return g.entries(entries), nil
}

func (g *guarded) Home(ctx context.Context) ([]Section, error) {
	sections, err := g.src.Home(ctx)
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(sections, func(s Section, _ int) (Section, bool) {
		if len(s.Entries) == 0 {
			return Section{}, false
		}
		s.Entries = g.entries(s.Entries)
		return s, true
	}), nil
}

func (g *guarded) MovieDetails(ctx context.Context, url string) (Movie, error) {
	movie, err := g.src.MovieDetails(ctx, url)
	if err != nil {
		return Movie{}, err
	}
	movie.Entry = g.entry(movie.Entry)
	movie.Kind = KindMovie
	return movie, nil
}

func (g *guarded) ShowDetails(ctx context.Context, url string) (Show, error) {
	show, err := g.src.ShowDetails(ctx, url)
	if err != nil {
		return Show{}, err
	}
	show.Entry = g.entry(show.Entry)
	show.Kind = KindShow
	show.Seasons = lo.Filter(show.Seasons, func(s Season, _ int) bool { return len(s.Episodes) > 0 })
	return show, nil
}
