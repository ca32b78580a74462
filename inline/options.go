package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/resolver-cli/resolver/source"
	"github.com/resolver-cli/resolver/streams"
	"github.com/resolver-cli/resolver/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	// Picker selects entries out of search results.
	Picker func([]source.Entry) []source.Entry

	// EpisodesFilter narrows the seasons of a show.
	EpisodesFilter func([]source.Season) []source.Season
)

type Options struct {
	Out            io.Writer
	Sources        []source.Source
	Keyword        string
	Picker         mo.Option[Picker]
	EpisodesFilter mo.Option[EpisodesFilter]
	Json           bool

	// Streams resolves the hosts of the selected movies and episodes.
	Streams    bool
	Extractors streams.Extractors
}

// ParsePicker parses an entry selector: first, last, all, exact or a 0-based index.
func ParsePicker(kind, value string) (Picker, error) {
	switch kind {
	case "first":
		return func(entries []source.Entry) []source.Entry {
			return lo.Subset(entries, 0, 1)
		}, nil
	case "last":
		return func(entries []source.Entry) []source.Entry {
			return lo.Subset(entries, -1, 1)
		}, nil
	case "all":
		return func(entries []source.Entry) []source.Entry {
			return entries
		}, nil
	case "exact":
		return func(entries []source.Entry) []source.Entry {
			return lo.Filter(entries, func(e source.Entry, _ int) bool {
				return strings.EqualFold(e.Title, value)
			})
		}, nil
	}

	idx, err := strconv.Atoi(kind)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("unknown picker: %s", kind)
	}

	return func(entries []source.Entry) []source.Entry {
		if len(entries) == 0 {
			return nil
		}
		return []source.Entry{entries[util.Min(idx, len(entries)-1)]}
	}, nil
}

// ParseEpisodesFilter parses an episode selector.
//
//	all       every episode
//	first     first episode of the first season
//	last      last episode of the last season
//	2         every episode of season 2
//	2:5       episode 5 of season 2
//	2:5-8     episodes 5 to 8 of season 2
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	switch description {
	case "all":
		return func(seasons []source.Season) []source.Season { return seasons }, nil
	case "first":
		return func(seasons []source.Season) []source.Season {
			if len(seasons) == 0 {
				return seasons
			}
			first := seasons[0]
			first.Episodes = lo.Subset(first.Episodes, 0, 1)
			return []source.Season{first}
		}, nil
	case "last":
		return func(seasons []source.Season) []source.Season {
			if len(seasons) == 0 {
				return seasons
			}
			last := seasons[len(seasons)-1]
			last.Episodes = lo.Subset(last.Episodes, -1, 1)
			return []source.Season{last}
		}, nil
	}

	seasonPart, episodePart, hasEpisodes := strings.Cut(description, ":")
	season, err := strconv.Atoi(seasonPart)
	if err != nil {
		return nil, fmt.Errorf("invalid episode filter: %s", description)
	}

	from, to := 0, int(^uint(0)>>1)
	if hasEpisodes {
		lower, upper, isRange := strings.Cut(episodePart, "-")
		if from, err = strconv.Atoi(lower); err != nil {
			return nil, fmt.Errorf("invalid episode filter: %s", description)
		}
		to = from
		if isRange {
			if to, err = strconv.Atoi(upper); err != nil || to < from {
				return nil, fmt.Errorf("invalid episode filter: %s", description)
			}
		}
	}

	return func(seasons []source.Season) []source.Season {
		return lo.FilterMap(seasons, func(s source.Season, _ int) (source.Season, bool) {
			if s.Number != season {
				return s, false
			}
			s.Episodes = lo.Filter(s.Episodes, func(e source.Episode, _ int) bool {
				return e.Number >= from && e.Number <= to
			})
			return s, len(s.Episodes) > 0
		})
	}, nil
}
