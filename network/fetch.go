package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/source"
)

// maxBody caps how much of a response is read into memory.
var maxBody = 32 << 20

// ErrTooLarge is returned for responses longer than the body limit.
var ErrTooLarge = errors.New("response too large")

// Fetcher retrieves the body of a URL. Adapters depend on this instead of an http.Client.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// StatusError is returned for non-2xx responses that are not challenges.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.Status)
}

// HTTPFetcher fetches with an http.Client. The zero value uses Client.
type HTTPFetcher struct {
	Client *http.Client
}

// Fetch performs a GET. Bot challenges are reported as *source.CaptchaError. No retries.
func (f HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = Client
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBody)+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if len(body) > maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, url, maxBody)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		if IsChallenge(resp.Header, body) {
			return nil, &source.CaptchaError{URL: resp.Request.URL.String()}
		}
	}

	return nil, &StatusError{URL: url, Status: resp.StatusCode}
}

// IsChallenge reports whether a response looks like a human verification page.
func IsChallenge(header http.Header, body []byte) bool {
	if header.Get("Cf-Mitigated") == "challenge" {
		return true
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return false
	}

	title := strings.ToLower(strings.TrimSpace(doc.Find("title").First().Text()))
	switch {
	case strings.Contains(title, "just a moment"), strings.Contains(title, "attention required"):
		return true
	case doc.Find("#challenge-form, #cf-challenge-running, .g-recaptcha, .h-captcha").Length() > 0:
		return true
	}

	found := false
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		found = strings.Contains(src, "/cdn-cgi/challenge-platform/")
		return !found
	})
	return found
}
