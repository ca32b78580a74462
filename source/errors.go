package source

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent means the request succeeded but produced nothing usable.
	ErrNoContent = errors.New("no content")

	// ErrWrongURL means a URL does not have the shape the adapter expects.
	ErrWrongURL = errors.New("wrong url")

	// ErrEpisodeURLNotFound means a show page does not expose enough structure to
	// enumerate its episodes, e.g. no season count.
	ErrEpisodeURLNotFound = errors.New("episode url not found")
)

// CaptchaError reports a human verification challenge. It is potentially recoverable:
// a caller may present URL to the user and retry.
type CaptchaError struct {
	URL string
}

func (e *CaptchaError) Error() string {
	return fmt.Sprintf("captcha required at %s", e.URL)
}

// DecodeError wraps a response that did not match the adapter's expected schema.
type DecodeError struct {
	URL   string
	Cause error
}

func (e *DecodeError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("decode: %v", e.Cause)
	}
	return fmt.Sprintf("decode %s: %v", e.URL, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// IsCaptcha reports whether err carries a challenge, returning its URL.
func IsCaptcha(err error) (string, bool) {
	var captcha *CaptchaError
	if errors.As(err, &captcha) {
		return captcha.URL, true
	}
	return "", false
}
