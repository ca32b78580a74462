// Package network provides the shared HTTP client and the "fetch bytes for URL" capability used by adapters.
package network

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/samber/lo"
	"golang.org/x/net/publicsuffix"
)

// Client is the HTTP client shared across the application.
// It keeps cookies per site, which several catalogs require between listing and detail pages.
var Client = NewClient(time.Minute)

// NewClient returns a client with the tuned transport and its own cookie jar.
func NewClient(timeout time.Duration) *http.Client {
	jar := lo.Must(cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List}))
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(),
		Jar:       jar,
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
