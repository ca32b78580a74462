// Package identity defines the tagged reference that names a provider.
//
// A provider is either a built-in adapter selected by name (local) or an adapter configured
// in the registry and selected by an opaque id (remote). The JSON form carries exactly one
// of the two keys:
//
//	{"local":  {"id": "moviebox"}}
//	{"remote": {"id": "f3b1c2"}}
package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind tells how a provider is dispatched.
type Kind string

const (
	KindLocal  Kind = "local"
	KindRemote Kind = "remote"
)

// ErrMalformed is returned when decoding a structure that is not a valid identity.
var ErrMalformed = errors.New("malformed provider identity")

// Provider identifies a provider. The zero value is invalid.
type Provider struct {
	kind Kind
	id   string
}

// Local names a built-in adapter.
func Local(name string) Provider {
	return Provider{kind: KindLocal, id: name}
}

// Remote names a registry-configured adapter.
func Remote(id string) Provider {
	return Provider{kind: KindRemote, id: id}
}

func (p Provider) Kind() Kind     { return p.kind }
func (p Provider) IsLocal() bool  { return p.kind == KindLocal }
func (p Provider) IsRemote() bool { return p.kind == KindRemote }
func (p Provider) IsZero() bool   { return p.kind == "" }

// RawValue is the adapter name or the remote id.
func (p Provider) RawValue() string {
	return p.id
}

func (p Provider) String() string {
	if p.IsZero() {
		return "<none>"
	}
	return string(p.kind) + ":" + p.id
}

type payload struct {
	ID string `json:"id"`
}

// MarshalJSON encodes the single-key form.
func (p Provider) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("%w: empty identity", ErrMalformed)
	}
	return json.Marshal(map[Kind]payload{p.kind: {ID: p.id}})
}

// UnmarshalJSON decodes the single-key form, rejecting zero or several keys.
func (p *Provider) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("%w: null", ErrMalformed)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("%w: expected exactly one key, found %d", ErrMalformed, len(raw))
	}

	for k, v := range raw {
		kind := Kind(k)
		if kind != KindLocal && kind != KindRemote {
			return fmt.Errorf("%w: unknown key %q", ErrMalformed, k)
		}

		var body payload
		if err := json.Unmarshal(v, &body); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if body.ID == "" {
			return fmt.Errorf("%w: missing id", ErrMalformed)
		}

		*p = Provider{kind: kind, id: body.ID}
	}

	return nil
}

// Parse reads the "kind:id" form produced by String, as used on the command line.
// A bare name is taken as local.
func Parse(s string) (Provider, error) {
	k, id, found := strings.Cut(s, ":")
	kind := Kind(k)
	if !found {
		if s == "" {
			return Provider{}, fmt.Errorf("%w: empty", ErrMalformed)
		}
		return Local(s), nil
	}
	if id == "" {
		return Provider{}, fmt.Errorf("%w: missing id in %q", ErrMalformed, s)
	}
	switch kind {
	case KindLocal:
		return Local(id), nil
	case KindRemote:
		return Remote(id), nil
	default:
		return Provider{}, fmt.Errorf("%w: unknown kind %q", ErrMalformed, kind)
	}
}
