package provider

import (
	"maps"
	"slices"

	"github.com/resolver-cli/resolver/key"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/provider/moviebox"
	"github.com/resolver-cli/resolver/source"
	"github.com/spf13/viper"
)

// Env is what an adapter constructor receives.
type Env struct {
	Fetcher network.Fetcher

	// SeasonConcurrency bounds the concurrent season fetches of one show.
	SeasonConcurrency int
}

// Factory constructs an adapter.
type Factory func(env Env) (source.Source, error)

// Factories maps adapter names to constructors.
type Factories map[string]Factory

// Names returns the adapter names, sorted.
func (f Factories) Names() []string {
	return slices.Sorted(maps.Keys(f))
}

// With returns a copy of f extended with other. Names already in f are kept.
func (f Factories) With(other Factories) Factories {
	merged := maps.Clone(f)
	if merged == nil {
		merged = make(Factories, len(other))
	}
	for name, factory := range other {
		if _, exists := merged[name]; !exists {
			merged[name] = factory
		}
	}
	return merged
}

// Builtins returns the adapters compiled into the binary.
func Builtins() Factories {
	return Factories{
		moviebox.Name: func(env Env) (source.Source, error) {
			return moviebox.New(moviebox.Options{
				BaseURL:           viper.GetString(key.MovieboxURL),
				Fetcher:           env.Fetcher,
				SeasonConcurrency: env.SeasonConcurrency,
			})
		},
	}
}
