// Package remote implements a provider adapter that forwards every call to a remote execution host.
//
// Each call is a POST of a JSON request to <endpoint>/rpc/<method>. The host answers with an
// envelope holding either the result or an error whose kind maps back to the source error
// taxonomy, so a remote adapter fails exactly like a local one would.
package remote

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/resolver-cli/resolver/source"
)

// Methods of the wire protocol.
const (
	MethodLatestMovies = "latestMovies"
	MethodLatestShows  = "latestShows"
	MethodSearch       = "search"
	MethodHome         = "home"
	MethodMovieDetails = "movieDetails"
	MethodShowDetails  = "showDetails"
)

// Request carries the arguments of a call. Unused fields are omitted.
type Request struct {
	Page    int    `json:"page,omitempty"`
	Keyword string `json:"keyword,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Envelope is the response body. Exactly one of Result and Error is set.
type Envelope[T any] struct {
	Result *T     `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// ErrorKind classifies a remote failure.
type ErrorKind string

const (
	KindNoContent          ErrorKind = "no_content"
	KindWrongURL           ErrorKind = "wrong_url"
	KindCaptcha            ErrorKind = "captcha"
	KindEpisodeURLNotFound ErrorKind = "episode_url_not_found"
	KindDecode             ErrorKind = "decode"
	KindUnknownProvider    ErrorKind = "unknown_provider"
	KindUnknownMethod      ErrorKind = "unknown_method"
	KindInternal           ErrorKind = "internal"
)

// Error is the wire form of a failure.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	URL     string    `json:"url,omitempty"`
}

// ErrRemote is wrapped by failures that have no counterpart in the source taxonomy.
var ErrRemote = errors.New("remote provider failure")

// EncodeError converts err into its wire form.
func EncodeError(err error) *Error {
	var decode *source.DecodeError
	switch captchaURL, isCaptcha := source.IsCaptcha(err); {
	case isCaptcha:
		return &Error{Kind: KindCaptcha, Message: err.Error(), URL: captchaURL}
	case errors.Is(err, source.ErrNoContent):
		return &Error{Kind: KindNoContent, Message: err.Error()}
	case errors.Is(err, source.ErrWrongURL):
		return &Error{Kind: KindWrongURL, Message: err.Error()}
	case errors.Is(err, source.ErrEpisodeURLNotFound):
		return &Error{Kind: KindEpisodeURLNotFound, Message: err.Error()}
	case errors.As(err, &decode):
		return &Error{Kind: KindDecode, Message: err.Error(), URL: decode.URL}
	default:
		return &Error{Kind: KindInternal, Message: err.Error()}
	}
}

// Err converts the wire form back into an error matching the local taxonomy.
func (e *Error) Err() error {
	switch e.Kind {
	case KindCaptcha:
		return &source.CaptchaError{URL: e.URL}
	case KindNoContent:
		return fmt.Errorf("%w (remote: %s)", source.ErrNoContent, e.Message)
	case KindWrongURL:
		return fmt.Errorf("%w (remote: %s)", source.ErrWrongURL, e.Message)
	case KindEpisodeURLNotFound:
		return fmt.Errorf("%w (remote: %s)", source.ErrEpisodeURLNotFound, e.Message)
	case KindDecode:
		return &source.DecodeError{URL: e.URL, Cause: errors.New(e.Message)}
	default:
		return fmt.Errorf("%w: %s: %s", ErrRemote, e.Kind, e.Message)
	}
}

// StatusOf is the HTTP status the host uses for a wire error.
func StatusOf(kind ErrorKind) int {
	switch kind {
	case KindNoContent:
		return http.StatusNotFound
	case KindWrongURL, KindUnknownMethod:
		return http.StatusBadRequest
	case KindCaptcha:
		return http.StatusForbidden
	case KindEpisodeURLNotFound, KindDecode:
		return http.StatusUnprocessableEntity
	case KindUnknownProvider:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
