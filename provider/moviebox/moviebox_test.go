package moviebox

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/source"
	. "github.com/smartystreets/goconvey/convey"
)

func serve(routes map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(rand.Intn(15)) * time.Millisecond)
		body, ok := routes[r.URL.Path]
		switch {
		case !ok:
			http.NotFound(w, r)
		case body == "fail":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}
	}))
}

func episodesJSON(season, n int) string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf(`{"season":%d,"episode":%d}`, season, i+1)
	}
	return `{"data":[` + strings.Join(rows, ",") + `]}`
}

func newProvider(server *httptest.Server) *Provider {
	p, err := New(Options{
		BaseURL: server.URL,
		Fetcher: network.HTTPFetcher{Client: server.Client()},
	})
	So(err, ShouldBeNil)
	return p
}

func TestListings(t *testing.T) {
	ctx := context.Background()

	Convey("Given the moviebox API", t, func() {
		server := serve(map[string]string{
			"/movies/2":        `{"data":[{"id":7,"title":"Heat","poster":"https://img.example/heat.jpg","box_type":1}]}`,
			"/tvshows/1":       `{"data":[{"id":9,"title":"Dark","poster":null,"box_type":2,"max_season":3}]}`,
			"/search/the-wire": `{"data":[{"id":3,"title":"The Wire","poster":"not a url","box_type":2}]}`,
			"/movies/3":        `{"data":"oops"}`,
		})
		defer server.Close()
		p := newProvider(server)

		Convey("Latest movies map to movie entries", func() {
			entries, err := p.LatestMovies(ctx, 2)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 1)
			So(entries[0].Title, ShouldEqual, "Heat")
			So(entries[0].Kind, ShouldEqual, source.KindMovie)
			So(entries[0].URL, ShouldEqual, server.URL+"/movie/7")
			So(entries[0].Provider, ShouldResemble, identity.Local(Name))
		})

		Convey("Shows without poster get the placeholder", func() {
			entries, err := p.LatestShows(ctx, 1)
			So(err, ShouldBeNil)
			So(entries[0].Kind, ShouldEqual, source.KindShow)
			So(entries[0].URL, ShouldEqual, server.URL+"/tvshow/9")
			So(entries[0].Poster, ShouldEqual, constant.PlaceholderPoster)
		})

		Convey("Search dashes the keyword and drops invalid posters", func() {
			entries, err := p.Search(ctx, "the wire", 1)
			So(err, ShouldBeNil)
			So(entries[0].Title, ShouldEqual, "The Wire")
			So(entries[0].Poster, ShouldEqual, constant.PlaceholderPoster)
		})

		Convey("Schema mismatches surface as decode errors", func() {
			_, err := p.LatestMovies(ctx, 3)
			var decode *source.DecodeError
			So(errors.As(err, &decode), ShouldBeTrue)
			So(decode.URL, ShouldEqual, server.URL+"/movies/3")
		})

		Convey("Transport failures propagate", func() {
			_, err := p.LatestMovies(ctx, 99)
			var status *network.StatusError
			So(errors.As(err, &status), ShouldBeTrue)
		})
	})
}

func TestHome(t *testing.T) {
	ctx := context.Background()

	Convey("Given a home page with banners and empty rows", t, func() {
		server := serve(map[string]string{
			"/home": `{"msg":"ok","data":[
				{"name":"Banner","box_type":6,"list":[{"id":1,"title":"x","box_type":1}]},
				{"name":"Hero","box_type":2,"list":[{"id":2,"title":"y","box_type":1}]},
				{"name":"Trending","box_type":2,"list":[{"id":3,"title":"Heat","box_type":1},{"id":"bad"},{"id":4,"title":"Dark","box_type":2}]},
				{"name":"Ads","box_type":6,"list":[{"id":5,"title":"z","box_type":1}]},
				{"name":"Empty","box_type":2,"list":[]}
			]}`,
		})
		defer server.Close()
		p := newProvider(server)

		Convey("Only catalog rows with entries are returned", func() {
			sections, err := p.Home(ctx)
			So(err, ShouldBeNil)
			So(sections, ShouldHaveLength, 1)
			So(sections[0].Title, ShouldEqual, "Trending")

			Convey("Undecodable items are skipped", func() {
				So(sections[0].Entries, ShouldHaveLength, 2)
				So(sections[0].Entries[1].Kind, ShouldEqual, source.KindShow)
			})

			Convey("Every entry has a poster", func() {
				for _, e := range sections[0].Entries {
					So(e.Poster, ShouldNotBeEmpty)
				}
			})
		})
	})
}

func TestDetails(t *testing.T) {
	ctx := context.Background()

	Convey("Given a show with seasons of 3, 0 and 5 episodes", t, func() {
		routes := map[string]string{
			"/tvshow/9":   `{"data":{"id":9,"title":"Dark","poster":"https://img.example/dark.jpg","box_type":2,"max_season":3}}`,
			"/tvshow/9/1": episodesJSON(1, 3),
			"/tvshow/9/2": episodesJSON(2, 0),
			"/tvshow/9/3": episodesJSON(3, 5),
			"/tvshow/10":  `{"data":{"id":10,"title":"Lost","box_type":2}}`,
			"/movie/7":    `{"data":{"id":7,"title":"Heat","box_type":1}}`,
		}

		Convey("Seasons 1 and 3 are returned in order", func() {
			server := serve(routes)
			defer server.Close()
			p := newProvider(server)

			for i := 0; i < 5; i++ {
				show, err := p.ShowDetails(ctx, server.URL+"/tvshow/9")
				So(err, ShouldBeNil)
				So(show.Title, ShouldEqual, "Dark")
				So(show.Seasons, ShouldHaveLength, 2)
				So(show.Seasons[0].Number, ShouldEqual, 1)
				So(show.Seasons[0].Episodes, ShouldHaveLength, 3)
				So(show.Seasons[1].Number, ShouldEqual, 3)
				So(show.Seasons[1].Episodes, ShouldHaveLength, 5)
				So(show.Seasons[1].Episodes[4].Sources[0].URL, ShouldEqual, server.URL+"/tvshow/play/9/3/5")
			}
		})

		Convey("A failing season fails the show", func() {
			routes["/tvshow/9/2"] = "fail"
			server := serve(routes)
			defer server.Close()

			show, err := newProvider(server).ShowDetails(ctx, server.URL+"/tvshow/9")
			So(err, ShouldNotBeNil)
			So(show.Seasons, ShouldBeNil)
		})

		Convey("A show without season count fails", func() {
			server := serve(routes)
			defer server.Close()

			_, err := newProvider(server).ShowDetails(ctx, server.URL+"/tvshow/10")
			So(errors.Is(err, source.ErrEpisodeURLNotFound), ShouldBeTrue)
		})

		Convey("A movie resolves to its play host", func() {
			server := serve(routes)
			defer server.Close()

			movie, err := newProvider(server).MovieDetails(ctx, server.URL+"/movie/7")
			So(err, ShouldBeNil)
			So(movie.Title, ShouldEqual, "Heat")
			So(movie.Poster, ShouldEqual, constant.PlaceholderPoster)
			So(movie.Sources, ShouldResemble, []source.Host{{URL: server.URL + "/movie/play/7"}})
		})

		Convey("A URL without id is rejected", func() {
			server := serve(routes)
			defer server.Close()

			_, err := newProvider(server).MovieDetails(ctx, server.URL+"/movie/")
			So(errors.Is(err, source.ErrWrongURL), ShouldBeTrue)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("New rejects relative base URLs", t, func() {
		_, err := New(Options{BaseURL: "/api"})
		So(err, ShouldNotBeNil)
	})
}
