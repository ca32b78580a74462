// Package custom runs provider adapters written in Lua.
//
// A script defines the global functions named in the constant package. The script
// receives the mangal-lua-libs modules and a "fetch" module bound to the resolver's fetcher.
package custom

import (
	"fmt"
	"path/filepath"
	"strings"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/internal/scraper"
	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/network"
	"github.com/resolver-cli/resolver/provider"
	"github.com/resolver-cli/resolver/source"
	"github.com/resolver-cli/resolver/util"
	lua "github.com/yuin/gopher-lua"
)

// Required are the globals every script must define.
var Required = []string{
	constant.LatestMoviesFn,
	constant.LatestShowsFn,
	constant.SearchFn,
	constant.HomeFn,
	constant.MovieDetailsFn,
	constant.ShowInfoFn,
	constant.SeasonEpisodesFn,
}

// Options configure a scripted adapter.
type Options struct {
	Fetcher           network.Fetcher
	SeasonConcurrency int
}

// Load runs the script at path and checks that it defines every required function.
func Load(path string, options Options) (*Provider, error) {
	fetcher := options.Fetcher
	if fetcher == nil {
		fetcher = network.HTTPFetcher{}
	}

	p := &Provider{
		name:              util.FileStem(path),
		path:              path,
		fetcher:           fetcher,
		seasonConcurrency: options.SeasonConcurrency,
		state:             lua.NewState(),
	}

	libs.Preload(p.state)
	registerFetch(p.state, p)

	if err := scraper.PreCompileAndLoad(p.state, path); err != nil {
		p.state.Close()
		return nil, err
	}

	for _, fn := range Required {
		if p.state.GetGlobal(fn).Type() != lua.LTFunction {
			p.state.Close()
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, p.name)
		}
	}

	return p, nil
}

// Discover lists the scripts in dir as adapter constructors keyed by script name.
// Scripts are loaded when resolved, so a broken script fails only its own identity.
func Discover(dir string) (provider.Factories, error) {
	files, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	factories := make(provider.Factories)
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), constant.ScriptExtension) {
			continue
		}

		path := filepath.Join(dir, file.Name())
		factories[util.FileStem(path)] = func(env provider.Env) (source.Source, error) {
			return Load(path, Options{
				Fetcher:           env.Fetcher,
				SeasonConcurrency: env.SeasonConcurrency,
			})
		}
	}

	log.Debugf("discovered %d scripted providers in %s", len(factories), dir)
	return factories, nil
}
