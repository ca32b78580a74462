package source

import (
	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/identity"
)

// Kind distinguishes movies from shows in catalog listings.
type Kind string

const (
	KindMovie Kind = "movie"
	KindShow  Kind = "show"
)

// Entry is the normalized summary of a movie or show. URL is its identity.
type Entry struct {
	Title    string            `json:"title"`
	URL      string            `json:"url"`
	Poster   string            `json:"poster"`
	Kind     Kind              `json:"kind"`
	Provider identity.Provider `json:"provider"`
}

func (e Entry) String() string {
	return e.Title
}

// PosterOrPlaceholder returns the poster, or the generic placeholder when the source omitted it.
func PosterOrPlaceholder(poster string) string {
	if poster == "" {
		return constant.PlaceholderPoster
	}
	return poster
}

// Section is a titled row of a provider's home page.
type Section struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Host is a deferred source: visiting URL yields one or more streams.
type Host struct {
	URL string `json:"url"`
}

// Movie is a catalog entry resolved to its source hosts.
type Movie struct {
	Entry
	Sources []Host `json:"sources"`
}

// Show is a catalog entry resolved to its seasons, ordered by number.
type Show struct {
	Entry
	Seasons []Season `json:"seasons"`
}

// Episodes returns the total number of episodes across seasons.
func (s Show) Episodes() int {
	n := 0
	for _, season := range s.Seasons {
		n += len(season.Episodes)
	}
	return n
}

// Season groups the episodes of one season of a show.
type Season struct {
	Number   int       `json:"number"`
	URL      string    `json:"url"`
	Episodes []Episode `json:"episodes"`
}

// Episode is a single episode and its source hosts.
type Episode struct {
	Number  int    `json:"number"`
	Sources []Host `json:"sources"`
}

// Subtitle is an external, language-tagged subtitle track.
type Subtitle struct {
	URL      string `json:"url"`
	Language string `json:"language"`
	Label    string `json:"label,omitempty"`
}
