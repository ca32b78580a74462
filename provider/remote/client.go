package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/source"
)

// Client is a source.Source executed by a remote host.
type Client struct {
	id       identity.Provider
	name     string
	endpoint string
	http     *http.Client
}

// New returns a client for the adapter served at endpoint. A nil httpClient uses network.Client.
func New(id identity.Provider, name, endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = network.Client
	}
	if name == "" {
		name = id.RawValue()
	}
	return &Client{
		id:       id,
		name:     name,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		http:     httpClient,
	}
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) ID() identity.Provider {
	return c.id
}

// Endpoint is the base URL calls are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) LatestMovies(ctx context.Context, page int) ([]source.Entry, error) {
	return call[[]source.Entry](ctx, c, MethodLatestMovies, Request{Page: page})
}

func (c *Client) LatestShows(ctx context.Context, page int) ([]source.Entry, error) {
	return call[[]source.Entry](ctx, c, MethodLatestShows, Request{Page: page})
}

func (c *Client) Search(ctx context.Context, keyword string, page int) ([]source.Entry, error) {
	return call[[]source.Entry](ctx, c, MethodSearch, Request{Keyword: keyword, Page: page})
}

func (c *Client) Home(ctx context.Context) ([]source.Section, error) {
	return call[[]source.Section](ctx, c, MethodHome, Request{})
}

func (c *Client) MovieDetails(ctx context.Context, url string) (source.Movie, error) {
	return call[source.Movie](ctx, c, MethodMovieDetails, Request{URL: url})
}

func (c *Client) ShowDetails(ctx context.Context, url string) (source.Show, error) {
	return call[source.Show](ctx, c, MethodShowDetails, Request{URL: url})
}

func call[T any](ctx context.Context, c *Client, method string, args Request) (T, error) {
	var zero T

	body, err := json.Marshal(args)
	if err != nil {
		return zero, fmt.Errorf("encode %s request: %w", method, err)
	}

	target := c.endpoint + "/rpc/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return zero, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.With(log.Fields{"provider": c.id.String(), "method": method}).Debug("remote call")

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("read %s response: %w", method, err)
	}

	var envelope Envelope[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode >= 300 {
			return zero, &network.StatusError{URL: target, Status: resp.StatusCode}
		}
		return zero, &source.DecodeError{URL: target, Cause: err}
	}

	switch {
	case envelope.Error != nil:
		return zero, envelope.Error.Err()
	case resp.StatusCode >= 300:
		return zero, &network.StatusError{URL: target, Status: resp.StatusCode}
	case envelope.Result == nil:
		return zero, &source.DecodeError{URL: target, Cause: fmt.Errorf("%s: empty result", method)}
	}

	return *envelope.Result, nil
}
