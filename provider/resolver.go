package provider

import (
	"errors"
	"fmt"
	"maps"
	"net/http"

	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/provider/remote"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
)

// Options configure a Resolver.
type Options struct {
	Registry  Registry
	Factories Factories
	Env       Env

	// ForceRemote routes local identities through the registry entry of the same id.
	// Decided once per process, typically on hosts that cannot run adapters in-process.
	ForceRemote bool

	// HTTPClient is used by remote adapters. Nil means network.Client.
	HTTPClient *http.Client
}

// Resolver turns identities into adapters. It is immutable and safe for concurrent use.
type Resolver struct {
	registry    Registry
	factories   Factories
	env         Env
	forceRemote bool
	httpClient  *http.Client
}

// NewResolver returns a resolver over a snapshot of options.
func NewResolver(options Options) *Resolver {
	env := options.Env
	if env.Fetcher == nil {
		env.Fetcher = network.HTTPFetcher{}
	}
	return &Resolver{
		registry:    options.Registry,
		factories:   maps.Clone(options.Factories),
		env:         env,
		forceRemote: options.ForceRemote,
		httpClient:  options.HTTPClient,
	}
}

// Registry returns the registry the resolver consults.
func (r *Resolver) Registry() Registry {
	return r.registry
}

// Factories returns a copy of the adapter constructors.
func (r *Resolver) Factories() Factories {
	return maps.Clone(r.factories)
}

// ForceRemote reports whether local identities are dispatched remotely.
func (r *Resolver) ForceRemote() bool {
	return r.forceRemote
}

// Resolve returns the adapter for id. Every result honours the source contract, see source.Guard.
func (r *Resolver) Resolve(id identity.Provider) (source.Source, error) {
	logger := log.With(log.Fields{"provider": id.String()})

	switch {
	case id.IsZero():
		return nil, fmt.Errorf("%w: empty identity", ErrUnknownProvider)
	case id.IsLocal() && r.forceRemote:
		client, err := r.remote(id.RawValue())
		if err != nil {
			return nil, err
		}
		logger.Debug("dispatching local provider remotely")
		return source.As(client, id), nil
	case id.IsLocal():
		factory, ok := r.factories[id.RawValue()]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, id.RawValue())
		}
		src, err := factory(r.env)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", id.RawValue(), err)
		}
		return source.Guard(src), nil
	default:
		client, err := r.remote(id.RawValue())
		if err != nil {
			return nil, err
		}
		return source.Guard(client), nil
	}
}

// MustResolve is Resolve for callers that treat a missing provider as fatal.
func (r *Resolver) MustResolve(id identity.Provider) source.Source {
	return lo.Must(r.Resolve(id))
}

func (r *Resolver) remote(id string) (*remote.Client, error) {
	config, ok := r.registry.Lookup(id).Get()
	if !ok {
		return nil, fmt.Errorf("%w: %s is not in the registry", ErrNotConfigured, id)
	}
	if config.Endpoint == "" {
		return nil, fmt.Errorf("%w: %s has no endpoint", ErrNotConfigured, id)
	}
	return remote.New(identity.Remote(config.ID), config.Title, config.Endpoint, r.httpClient), nil
}

// Identities lists every identity the resolver can serve: built-in names and registry entries.
func (r *Resolver) Identities() []identity.Provider {
	ids := lo.Map(r.factories.Names(), func(name string, _ int) identity.Provider {
		return identity.Local(name)
	})
	for _, c := range r.registry.Configs() {
		if c.Kind == identity.KindRemote {
			ids = append(ids, c.Identity())
		}
	}
	return ids
}

// Validate checks at startup that every registry entry can be resolved.
func (r *Resolver) Validate() error {
	var errs []error
	for _, c := range r.registry.Configs() {
		src, err := r.Resolve(c.Identity())
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.ID, err))
			continue
		}
		source.Close(src)
	}
	return errors.Join(errs...)
}
