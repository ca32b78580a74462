package cmd

import (
	"time"

	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/internal/cache"
	"github.com/resolver-cli/resolver/key"
	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/provider"
	"github.com/resolver-cli/resolver/provider/custom"
	"github.com/resolver-cli/resolver/source"
	"github.com/resolver-cli/resolver/streams"
	"github.com/resolver-cli/resolver/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// fetcher is the fetch capability shared by every adapter of the process.
func fetcher() network.Fetcher {
	timeout := time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second
	return network.HTTPFetcher{Client: network.NewClient(timeout)}
}

// factories returns the built-in adapters plus the scripts found in the providers directory.
// A built-in name shadows a script of the same name.
func factories() provider.Factories {
	scripts, err := custom.Discover(where.Providers())
	if err != nil {
		log.Warnf("scripted providers unavailable: %v", err)
		return provider.Builtins()
	}
	return provider.Builtins().With(scripts)
}

// newResolver builds the resolver from configuration. forceRemote is ignored when local is set,
// which the execution host uses to never forward calls it should serve.
func newResolver(local bool) *provider.Resolver {
	registry, err := provider.LoadRegistry(where.Registry())
	handleErr(err)

	return provider.NewResolver(provider.Options{
		Registry:  registry,
		Factories: factories(),
		Env: provider.Env{
			Fetcher:           fetcher(),
			SeasonConcurrency: viper.GetInt(key.FetchSeasonConcurrency),
		},
		ForceRemote: viper.GetBool(key.ProvidersForceRemote) && !local,
	})
}

func cacheTTL() time.Duration {
	return time.Duration(viper.GetInt(key.CacheTTL)) * time.Minute
}

// selectedSource resolves the provider chosen with --provider.
// Its listings are served from the cache while they are fresh.
func selectedSource() source.Source {
	id, err := identity.Parse(viper.GetString(key.ProvidersDefault))
	handleErr(err)

	src, err := newResolver(false).Resolve(id)
	handleErr(err)
	return cache.Wrap(src, cacheTTL())
}

func extractors() streams.Extractors {
	return streams.Default(fetcher())
}

func completionProviders(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	registry, err := provider.LoadRegistry(where.Registry())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := factories().Names()
	for _, c := range registry.Configs() {
		if c.Kind == identity.KindRemote {
			names = append(names, c.Identity().String())
		}
	}

	return lo.Uniq(names), cobra.ShellCompDirectiveNoFileComp
}
