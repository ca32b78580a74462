package custom

import (
	"context"
	"errors"
	"testing"

	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/provider"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const script = `
function LatestMovies(page)
	if page > 1 then
		return {}
	end
	return {
		{ title = "Heat", url = "https://site.example/movie/1" },
		{ title = "" },
	}
end

function LatestShows(page)
	return { { title = "Dark", url = "https://site.example/tv/2", poster = "https://img.example/dark.jpg" } }
end

function Search(keyword, page)
	local body = fetch.get("https://site.example/search/" .. keyword)
	return { { title = body, url = "https://site.example/movie/" .. keyword, kind = "movie" } }
end

function Home()
	return {
		{ title = "Trending", entries = { { title = "Heat", url = "https://site.example/movie/1" } } },
		{ title = "Empty", entries = {} },
	}
end

function MovieDetails(url)
	if url == "https://site.example/movie/locked" then
		fetch.challenge("https://site.example/verify")
	end
	return { title = "Heat", sources = { "https://cdn.example/heat.mp4", { url = "https://cdn.example/heat.m3u8" } } }
end

function ShowInfo(url)
	if url:find("mystery") then
		return { title = "Mystery", url = url }
	end
	return { title = "Dark", url = url, seasons = 3 }
end

function SeasonEpisodes(url, season)
	if season == 2 then
		return {}
	end
	local episodes = {}
	for i = 1, season do
		episodes[i] = { name = "Episode " .. i, url = url .. "/" .. season .. "/" .. i }
	end
	return episodes
end
`

type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(_ context.Context, url string, _ map[string]string) ([]byte, error) {
	if url == "https://site.example/search/locked" {
		return nil, &source.CaptchaError{URL: url}
	}
	body, ok := f[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(body), nil
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	filesystem.SetMemMapFs()

	Convey("Given a script", t, func() {
		path := "/providers/demo.lua"
		So(filesystem.API().WriteFile(path, []byte(script), 0644), ShouldBeNil)

		p, err := Load(path, Options{
			Fetcher:           fakeFetcher{"https://site.example/search/heat": "Heat (1995)"},
			SeasonConcurrency: 2,
		})
		So(err, ShouldBeNil)
		defer p.Close()

		Convey("It is named after the file", func() {
			So(p.Name(), ShouldEqual, "demo")
			So(p.ID(), ShouldResemble, identity.Local("demo"))
		})

		Convey("Listings skip malformed items", func() {
			movies, err := p.LatestMovies(ctx, 1)
			So(err, ShouldBeNil)
			So(movies, ShouldHaveLength, 1)
			So(movies[0].Kind, ShouldEqual, source.KindMovie)

			movies, err = p.LatestMovies(ctx, 2)
			So(err, ShouldBeNil)
			So(movies, ShouldBeEmpty)

			shows, err := p.LatestShows(ctx, 1)
			So(err, ShouldBeNil)
			So(shows[0].Kind, ShouldEqual, source.KindShow)
		})

		Convey("Scripts fetch through the resolver", func() {
			found, err := p.Search(ctx, "heat", 1)
			So(err, ShouldBeNil)
			So(found[0].Title, ShouldEqual, "Heat (1995)")

			_, err = p.Search(ctx, "locked", 1)
			captchaURL, ok := source.IsCaptcha(err)
			So(ok, ShouldBeTrue)
			So(captchaURL, ShouldEqual, "https://site.example/search/locked")
		})

		Convey("Home keeps section order", func() {
			sections, err := p.Home(ctx)
			So(err, ShouldBeNil)
			So(lo.Map(sections, func(s source.Section, _ int) string { return s.Title }), ShouldResemble, []string{"Trending", "Empty"})
		})

		Convey("Movie details", func() {
			movie, err := p.MovieDetails(ctx, "https://site.example/movie/1")
			So(err, ShouldBeNil)
			So(movie.URL, ShouldEqual, "https://site.example/movie/1")
			So(movie.Sources, ShouldHaveLength, 2)

			_, err = p.MovieDetails(ctx, "https://site.example/movie/locked")
			captchaURL, ok := source.IsCaptcha(err)
			So(ok, ShouldBeTrue)
			So(captchaURL, ShouldEqual, "https://site.example/verify")
		})

		Convey("Show details expand seasons in order", func() {
			show, err := p.ShowDetails(ctx, "https://site.example/tv/2")
			So(err, ShouldBeNil)
			So(lo.Map(show.Seasons, func(s source.Season, _ int) int { return s.Number }), ShouldResemble, []int{1, 3})
			So(show.Episodes(), ShouldEqual, 4)
			So(show.Seasons[1].Episodes[2].Number, ShouldEqual, 3)

			_, err = p.ShowDetails(ctx, "https://site.example/tv/mystery")
			So(errors.Is(err, source.ErrEpisodeURLNotFound), ShouldBeTrue)
		})

		Convey("Cancelled calls stop", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := p.LatestMovies(cancelled, 1)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Broken scripts are rejected", t, func() {
		So(filesystem.API().WriteFile("/providers/partial.lua", []byte(`function Search() return {} end`), 0644), ShouldBeNil)
		_, err := Load("/providers/partial.lua", Options{})
		So(err, ShouldNotBeNil)

		So(filesystem.API().WriteFile("/providers/syntax.lua", []byte(`function (`), 0644), ShouldBeNil)
		_, err = Load("/providers/syntax.lua", Options{})
		So(err, ShouldNotBeNil)
	})
}

func TestDiscover(t *testing.T) {
	filesystem.SetMemMapFs()

	Convey("Discover", t, func() {
		dir := "/scripts"
		So(filesystem.API().WriteFile(dir+"/demo.lua", []byte(script), 0644), ShouldBeNil)
		So(filesystem.API().WriteFile(dir+"/notes.txt", []byte("not a script"), 0644), ShouldBeNil)

		factories, err := Discover(dir)
		So(err, ShouldBeNil)
		So(factories.Names(), ShouldResemble, []string{"demo"})

		Convey("Scripted adapters resolve like built-ins", func() {
			resolver := provider.NewResolver(provider.Options{Factories: factories})
			src, err := resolver.Resolve(identity.Local("demo"))
			So(err, ShouldBeNil)

			shows, err := src.LatestShows(context.Background(), 1)
			So(err, ShouldBeNil)
			So(shows[0].Provider, ShouldResemble, identity.Local("demo"))
		})
	})
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	filesystem.SetMemMapFs()

	Convey("Given a closed script provider", t, func() {
		path := "/providers/closing.lua"
		So(filesystem.API().WriteFile(path, []byte(script), 0644), ShouldBeNil)

		p, err := Load(path, Options{Fetcher: fakeFetcher{}, SeasonConcurrency: 1})
		So(err, ShouldBeNil)
		p.Close()

		Convey("Calls fail instead of touching the released state", func() {
			_, err := p.LatestMovies(ctx, 1)
			So(errors.Is(err, ErrClosed), ShouldBeTrue)

			_, err = p.ShowDetails(ctx, "https://site.example/tv/2")
			So(errors.Is(err, ErrClosed), ShouldBeTrue)
		})

		Convey("Closing again is harmless", func() {
			So(p.Close, ShouldNotPanic)
		})
	})
}
