package custom

import (
	"context"

	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/source"
	lua "github.com/yuin/gopher-lua"
)

func (p *Provider) listing(ctx context.Context, fn string, kind source.Kind, args ...lua.LValue) ([]source.Entry, error) {
	val, err := p.call(ctx, fn, lua.LTTable, args...)
	if err != nil {
		return nil, err
	}

	entries, err := entriesFromTable(val.(*lua.LTable), kind)
	if err != nil {
		return nil, &source.DecodeError{URL: p.path, Cause: err}
	}

	return entries, nil
}

func (p *Provider) LatestMovies(ctx context.Context, page int) ([]source.Entry, error) {
	return p.listing(ctx, constant.LatestMoviesFn, source.KindMovie, lua.LNumber(page))
}

func (p *Provider) LatestShows(ctx context.Context, page int) ([]source.Entry, error) {
	return p.listing(ctx, constant.LatestShowsFn, source.KindShow, lua.LNumber(page))
}

func (p *Provider) Search(ctx context.Context, keyword string, page int) ([]source.Entry, error) {
	return p.listing(ctx, constant.SearchFn, "", lua.LString(keyword), lua.LNumber(page))
}

func (p *Provider) Home(ctx context.Context) ([]source.Section, error) {
	val, err := p.call(ctx, constant.HomeFn, lua.LTTable)
	if err != nil {
		return nil, err
	}

	sections, err := each(val.(*lua.LTable), sectionFromTable)
	if err != nil {
		return nil, &source.DecodeError{URL: p.path, Cause: err}
	}

	return sections, nil
}
