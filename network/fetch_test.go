package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFetch(t *testing.T) {
	ctx := context.Background()

	Convey("Given a server", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.Header.Get("User-Agent") + "|" + r.Header.Get("Referer")))
		})
		mux.HandleFunc("/challenge", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`<html><head><title>Just a moment...</title></head><body></body></html>`))
		})
		mux.HandleFunc("/forbidden", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`<html><head><title>Forbidden</title></head></html>`))
		})
		mux.HandleFunc("/missing", http.NotFound)
		server := httptest.NewServer(mux)
		defer server.Close()

		fetcher := HTTPFetcher{Client: server.Client()}

		Convey("A 200 returns the body with default and custom headers", func() {
			body, err := fetcher.Fetch(ctx, server.URL+"/ok", map[string]string{"Referer": "https://site.example"})
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, constant.UserAgent+"|https://site.example")
		})

		Convey("A challenge page is a captcha error carrying the URL", func() {
			_, err := fetcher.Fetch(ctx, server.URL+"/challenge", nil)
			url, ok := source.IsCaptcha(err)
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, server.URL+"/challenge")
		})

		Convey("A plain 403 is a status error", func() {
			_, err := fetcher.Fetch(ctx, server.URL+"/forbidden", nil)
			var status *StatusError
			So(errors.As(err, &status), ShouldBeTrue)
			So(status.Status, ShouldEqual, http.StatusForbidden)
		})

		Convey("A 404 is a status error", func() {
			_, err := fetcher.Fetch(ctx, server.URL+"/missing", nil)
			var status *StatusError
			So(errors.As(err, &status), ShouldBeTrue)
			So(status.Status, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestIsChallenge(t *testing.T) {
	Convey("IsChallenge", t, func() {
		Convey("Detects the mitigation header", func() {
			h := http.Header{}
			h.Set("Cf-Mitigated", "challenge")
			So(IsChallenge(h, nil), ShouldBeTrue)
		})

		Convey("Detects challenge forms", func() {
			So(IsChallenge(http.Header{}, []byte(`<form id="challenge-form"></form>`)), ShouldBeTrue)
			So(IsChallenge(http.Header{}, []byte(`<div class="h-captcha"></div>`)), ShouldBeTrue)
		})

		Convey("Detects the challenge platform script", func() {
			So(IsChallenge(http.Header{}, []byte(`<script src="/cdn-cgi/challenge-platform/h/b/orchestrate.js"></script>`)), ShouldBeTrue)
		})

		Convey("Ignores ordinary pages", func() {
			So(IsChallenge(http.Header{}, []byte(`<html><title>Home</title><script src="/app.js"></script></html>`)), ShouldBeFalse)
		})
	})
}

func TestBodyLimit(t *testing.T) {
	Convey("Given a lowered body limit", t, func() {
		limit := maxBody
		maxBody = 16
		defer func() { maxBody = limit }()

		mux := http.NewServeMux()
		mux.HandleFunc("/exact", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("0123456789abcdef"))
		})
		mux.HandleFunc("/big", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("0123456789abcdefg"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		fetcher := HTTPFetcher{Client: server.Client()}

		Convey("A body at the limit is returned whole", func() {
			body, err := fetcher.Fetch(context.Background(), server.URL+"/exact", nil)
			So(err, ShouldBeNil)
			So(body, ShouldHaveLength, 16)
		})

		Convey("A longer body is an explicit error, not a truncated one", func() {
			body, err := fetcher.Fetch(context.Background(), server.URL+"/big", nil)
			So(body, ShouldBeNil)
			So(errors.Is(err, ErrTooLarge), ShouldBeTrue)
		})
	})
}
