// Package provider resolves provider identities to live adapters.
//
// Built-in adapters are looked up in a table of named constructors. Remote adapters are looked up
// in an immutable registry loaded once at startup and reached through a remote.Client.
package provider

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/identity"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Config is a registry entry.
type Config struct {
	ID       string        `json:"id" mapstructure:"id"`
	Kind     identity.Kind `json:"kind" mapstructure:"kind"`
	Endpoint string        `json:"endpoint,omitempty" mapstructure:"endpoint"`
	Icon     string        `json:"icon,omitempty" mapstructure:"icon"`
	Title    string        `json:"title,omitempty" mapstructure:"title"`
	Language string        `json:"language,omitempty" mapstructure:"language"`
}

// Identity is the identity a config entry stands for.
func (c Config) Identity() identity.Provider {
	if c.Kind == identity.KindRemote {
		return identity.Remote(c.ID)
	}
	return identity.Local(c.ID)
}

func (c Config) validate() error {
	if c.ID == "" {
		return errors.New("missing id")
	}

	switch c.Kind {
	case identity.KindLocal:
	case identity.KindRemote:
		if c.Endpoint == "" {
			return fmt.Errorf("%s: remote provider without endpoint", c.ID)
		}
	default:
		return fmt.Errorf("%s: unknown kind %q", c.ID, c.Kind)
	}

	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s: invalid endpoint %q", c.ID, c.Endpoint)
		}
	}

	return nil
}

// Registry is the read-only table of provider configurations.
// It is safe for concurrent use; nothing mutates it after NewRegistry returns.
type Registry struct {
	configs []Config
}

// NewRegistry validates configs and returns a registry holding a copy of them.
func NewRegistry(configs ...Config) (Registry, error) {
	var errs []error
	seen := make(map[string]bool, len(configs))

	for _, c := range configs {
		if err := c.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[c.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id", c.ID))
			continue
		}
		seen[c.ID] = true
	}

	if len(errs) > 0 {
		return Registry{}, fmt.Errorf("%w: %w", ErrInvalidRegistry, errors.Join(errs...))
	}

	return Registry{configs: append([]Config(nil), configs...)}, nil
}

// Lookup returns the first config with the given id.
func (r Registry) Lookup(id string) mo.Option[Config] {
	c, ok := lo.Find(r.configs, func(c Config) bool { return c.ID == id })
	if !ok {
		return mo.None[Config]()
	}
	return mo.Some(c)
}

// Configs returns a copy of every entry.
func (r Registry) Configs() []Config {
	return append([]Config(nil), r.configs...)
}

// Len is the number of entries.
func (r Registry) Len() int {
	return len(r.configs)
}

// Icon returns the icon of the provider, if configured.
func (r Registry) Icon(id identity.Provider) mo.Option[string] {
	c, ok := r.Lookup(id.RawValue()).Get()
	if !ok || c.Icon == "" {
		return mo.None[string]()
	}
	return mo.Some(c.Icon)
}

// LoadRegistry reads the registry file at path. A missing file yields an empty registry.
// The format follows the extension: toml, json or yaml, with a top-level "providers" list.
func LoadRegistry(path string) (Registry, error) {
	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return Registry{}, err
	}
	if !exists {
		return NewRegistry()
	}

	v := viper.New()
	v.SetFs(filesystem.API())
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Registry{}, fmt.Errorf("read registry %s: %w", path, err)
	}

	var configs []Config
	if err := v.UnmarshalKey("providers", &configs); err != nil {
		return Registry{}, fmt.Errorf("parse registry %s: %w", path, err)
	}

	return NewRegistry(configs...)
}
