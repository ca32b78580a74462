package custom

import (
	"context"

	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/seasons"
	"github.com/resolver-cli/resolver/source"
	lua "github.com/yuin/gopher-lua"
)

func (p *Provider) MovieDetails(ctx context.Context, url string) (source.Movie, error) {
	val, err := p.call(ctx, constant.MovieDetailsFn, lua.LTTable, lua.LString(url))
	if err != nil {
		return source.Movie{}, err
	}

	movie, err := movieFromTable(val.(*lua.LTable), url)
	if err != nil {
		return source.Movie{}, &source.DecodeError{URL: url, Cause: err}
	}

	return movie, nil
}

// ShowDetails asks the script for the season count, then expands every season.
// A show without a season count cannot be expanded.
func (p *Provider) ShowDetails(ctx context.Context, url string) (source.Show, error) {
	val, err := p.call(ctx, constant.ShowInfoFn, lua.LTTable, lua.LString(url))
	if err != nil {
		return source.Show{}, err
	}

	info := withDefault(val.(*lua.LTable), "url", url)

	entry, err := entryFromTable(info, source.KindShow)
	if err != nil {
		return source.Show{}, &source.DecodeError{URL: url, Cause: err}
	}

	count, ok := getInt(info, "seasons").Get()
	if !ok {
		return source.Show{}, source.ErrEpisodeURLNotFound
	}

	list, err := seasons.Gather(ctx, url, count, p.seasonConcurrency, func(ctx context.Context, n int) ([]source.Episode, error) {
		return p.season(ctx, url, n)
	})
	if err != nil {
		return source.Show{}, err
	}

	return source.Show{Entry: entry, Seasons: list}, nil
}

func (p *Provider) season(ctx context.Context, url string, number int) ([]source.Episode, error) {
	val, err := p.call(ctx, constant.SeasonEpisodesFn, lua.LTTable, lua.LString(url), lua.LNumber(number))
	if err != nil {
		return nil, err
	}

	episodes, err := each(val.(*lua.LTable), episodeFromTable)
	if err != nil {
		return nil, &source.DecodeError{URL: url, Cause: err}
	}

	return episodes, nil
}
