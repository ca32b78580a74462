// Package query remembers search keywords and suggests them back for completion.
// Only keywords are stored, never catalog results.
package query

import (
	"slices"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/key"
	"github.com/resolver-cli/resolver/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type record struct {
	Rank    int    `json:"rank"`
	Keyword string `json:"keyword"`
}

var (
	mu          sync.Mutex
	cacher      *gache.Cache[map[string]*record]
	suggestions = make(map[string][]string)
)

func store() *gache.Cache[map[string]*record] {
	if cacher == nil {
		cacher = gache.New[map[string]*record](&gache.Options{
			Path:       where.Queries(),
			FileSystem: &filesystem.GacheFs{},
		})
	}
	return cacher
}

func load() map[string]*record {
	cached, expired, err := store().Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*record)
	}
	return cached
}

// Remember records a keyword or raises its rank by weight.
func Remember(keyword string, weight int) error {
	keyword = sanitize(keyword)
	if keyword == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	records := load()
	if r, ok := records[keyword]; ok {
		r.Rank += weight
	} else {
		records[keyword] = &record{Rank: weight, Keyword: keyword}
	}

	clear(suggestions)
	return store().Set(records)
}

// Forget drops every remembered keyword.
func Forget() error {
	mu.Lock()
	defer mu.Unlock()

	clear(suggestions)
	return store().Set(make(map[string]*record))
}

// Suggest returns the best remembered keyword matching the partial input.
func Suggest(partial string) mo.Option[string] {
	all := SuggestMany(partial)
	if len(all) == 0 {
		return mo.None[string]()
	}
	return mo.Some(all[0])
}

// SuggestMany returns the remembered keywords fuzzily matching partial, highest rank first.
func SuggestMany(partial string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	partial = sanitize(partial)

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := suggestions[partial]; ok {
		return slices.Clone(cached)
	}

	matches := lo.Filter(lo.Values(load()), func(r *record, _ int) bool {
		return fuzzy.Match(partial, r.Keyword)
	})

	slices.SortFunc(matches, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Keyword, b.Keyword)
	})

	result := lo.Map(matches, func(r *record, _ int) string { return r.Keyword })
	suggestions[partial] = result
	return slices.Clone(result)
}

func sanitize(keyword string) string {
	return strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
}
