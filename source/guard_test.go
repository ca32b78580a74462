package source

import (
	"context"
	"errors"
	"testing"

	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/identity"
	. "github.com/smartystreets/goconvey/convey"
)

type stubSource struct {
	entries  []Entry
	sections []Section
	show     Show
	err      error
}

func (stubSource) Name() string          { return "Stub" }
func (stubSource) ID() identity.Provider { return identity.Local("stub") }
func (s stubSource) LatestMovies(context.Context, int) ([]Entry, error) {
	return s.entries, s.err
}
func (s stubSource) LatestShows(context.Context, int) ([]Entry, error) {
	return s.entries, s.err
}
func (s stubSource) Search(context.Context, string, int) ([]Entry, error) {
	return s.entries, s.err
}
func (s stubSource) Home(context.Context) ([]Section, error) {
	return s.sections, s.err
}
func (s stubSource) MovieDetails(_ context.Context, url string) (Movie, error) {
	return Movie{Entry: Entry{Title: "M", URL: url}}, s.err
}
func (s stubSource) ShowDetails(context.Context, string) (Show, error) {
	return s.show, s.err
}

func TestGuard(t *testing.T) {
	ctx := context.Background()

	Convey("Given an adapter that omits posters and provider identities", t, func() {
		stub := stubSource{
			entries: []Entry{
				{Title: "A", URL: "https://site.example/a"},
				{Title: "B", URL: "https://site.example/b", Poster: "https://img.example/b.jpg"},
			},
			sections: []Section{
				{Title: "Trending", Entries: []Entry{{Title: "A", URL: "https://site.example/a"}}},
				{Title: "Empty"},
				{Title: "Also empty", Entries: []Entry{}},
			},
			show: Show{
				Entry: Entry{Title: "S", URL: "https://site.example/s"},
				Seasons: []Season{
					{Number: 1, Episodes: []Episode{{Number: 1}}},
					{Number: 2},
				},
			},
		}
		src := Guard(stub)

		Convey("Listings get the placeholder poster and the provider", func() {
			entries, err := src.Search(ctx, "a", 1)
			So(err, ShouldBeNil)
			So(entries[0].Poster, ShouldEqual, constant.PlaceholderPoster)
			So(entries[1].Poster, ShouldEqual, "https://img.example/b.jpg")
			So(entries[0].Provider, ShouldResemble, identity.Local("stub"))
		})

		Convey("Home drops empty sections", func() {
			sections, err := src.Home(ctx)
			So(err, ShouldBeNil)
			So(sections, ShouldHaveLength, 1)
			So(sections[0].Title, ShouldEqual, "Trending")
			So(sections[0].Entries[0].Poster, ShouldNotBeEmpty)
		})

		Convey("Shows lose empty seasons", func() {
			show, err := src.ShowDetails(ctx, "https://site.example/s")
			So(err, ShouldBeNil)
			So(show.Seasons, ShouldHaveLength, 1)
			So(show.Kind, ShouldEqual, KindShow)
			So(show.Episodes(), ShouldEqual, 1)
		})

		Convey("Movies are stamped as movies", func() {
			movie, err := src.MovieDetails(ctx, "https://site.example/m")
			So(err, ShouldBeNil)
			So(movie.Kind, ShouldEqual, KindMovie)
			So(movie.Provider, ShouldResemble, identity.Local("stub"))
		})

		Convey("Guarding twice is a no-op", func() {
			So(Guard(src), ShouldEqual, src)
		})

		Convey("As relabels the results", func() {
			entries, err := As(stub, identity.Remote("stub")).LatestMovies(ctx, 1)
			So(err, ShouldBeNil)
			So(entries[0].Provider, ShouldResemble, identity.Remote("stub"))
		})
	})

	Convey("Errors pass through unchanged", t, func() {
		captcha := &CaptchaError{URL: "https://site.example/challenge"}
		_, err := Guard(stubSource{err: captcha}).LatestShows(ctx, 1)
		So(err, ShouldEqual, captcha)

		url, ok := IsCaptcha(err)
		So(ok, ShouldBeTrue)
		So(url, ShouldEqual, "https://site.example/challenge")

		_, err = Guard(stubSource{err: ErrNoContent}).Home(ctx)
		So(errors.Is(err, ErrNoContent), ShouldBeTrue)
	})
}

func TestDecodeError(t *testing.T) {
	Convey("DecodeError unwraps to its cause", t, func() {
		cause := errors.New("unexpected token")
		err := error(&DecodeError{URL: "https://api.example/home", Cause: cause})
		So(errors.Is(err, cause), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "https://api.example/home")
	})
}
