package custom

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/resolver-cli/resolver/source"
	"github.com/samber/mo"
	lua "github.com/yuin/gopher-lua"
)

var numberPattern = regexp.MustCompile(`\d+`)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return strings.TrimSpace(val.String())
	}
	return ""
}

// getInt accepts numbers and numeric strings.
func getInt(table *lua.LTable, key string) mo.Option[int] {
	switch val := table.RawGetString(key).(type) {
	case lua.LNumber:
		return mo.Some(int(val))
	case lua.LString:
		if n, err := strconv.Atoi(strings.TrimSpace(string(val))); err == nil {
			return mo.Some(n)
		}
	}
	return mo.None[int]()
}

// each calls f for every table in the array part of list, in order.
// Items that fail are skipped; when none succeed the first failure is returned.
func each[T any](list *lua.LTable, f func(*lua.LTable, int) (T, error)) ([]T, error) {
	var (
		items = make([]T, 0, list.Len())
		errs  []error
	)

	for i := 1; i <= list.Len(); i++ {
		tbl, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			errs = append(errs, fmt.Errorf("item %d is not a table", i))
			continue
		}

		item, err := f(tbl, i)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}

		items = append(items, item)
	}

	if len(items) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	return items, nil
}

func kindOf(table *lua.LTable, fallback source.Kind) source.Kind {
	switch kind := source.Kind(getString(table, "kind")); kind {
	case source.KindMovie, source.KindShow:
		return kind
	default:
		return fallback
	}
}

func entryFromTable(table *lua.LTable, kind source.Kind) (source.Entry, error) {
	title := getString(table, "title")
	url := getString(table, "url")

	if title == "" || url == "" {
		return source.Entry{}, errors.New("entry must have title and url")
	}

	return source.Entry{
		Title:  title,
		URL:    url,
		Poster: getString(table, "poster"),
		Kind:   kindOf(table, kind),
	}, nil
}

func entriesFromTable(list *lua.LTable, kind source.Kind) ([]source.Entry, error) {
	return each(list, func(tbl *lua.LTable, _ int) (source.Entry, error) {
		return entryFromTable(tbl, kind)
	})
}

func sectionFromTable(table *lua.LTable, _ int) (source.Section, error) {
	title := getString(table, "title")
	if title == "" {
		return source.Section{}, errors.New("section must have a title")
	}

	section := source.Section{Title: title}

	if list, ok := table.RawGetString("entries").(*lua.LTable); ok {
		entries, err := entriesFromTable(list, "")
		if err != nil {
			return source.Section{}, err
		}
		section.Entries = entries
	}

	return section, nil
}

// hostsFromTable reads table[key] as a list of URLs, either plain strings or { url = ... } tables.
func hostsFromTable(table *lua.LTable, key string) []source.Host {
	list, ok := table.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}

	hosts := make([]source.Host, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		var url string
		switch v := list.RawGetInt(i).(type) {
		case lua.LString:
			url = strings.TrimSpace(string(v))
		case *lua.LTable:
			url = getString(v, "url")
		}
		if url != "" {
			hosts = append(hosts, source.Host{URL: url})
		}
	}

	return hosts
}

func movieFromTable(table *lua.LTable, url string) (source.Movie, error) {
	entry, err := entryFromTable(withDefault(table, "url", url), source.KindMovie)
	if err != nil {
		return source.Movie{}, err
	}

	return source.Movie{
		Entry:   entry,
		Sources: hostsFromTable(table, "sources"),
	}, nil
}

// episodeFromTable prefers an explicit number, then the last number in the name,
// then the position in the list.
func episodeFromTable(table *lua.LTable, position int) (source.Episode, error) {
	number, ok := getInt(table, "number").Get()
	if !ok {
		number = position
		if matches := numberPattern.FindAllString(getString(table, "name"), -1); len(matches) > 0 {
			number, _ = strconv.Atoi(matches[len(matches)-1])
		}
	}

	sources := hostsFromTable(table, "sources")
	if url := getString(table, "url"); url != "" {
		sources = append(sources, source.Host{URL: url})
	}

	if len(sources) == 0 {
		return source.Episode{}, fmt.Errorf("episode %d has no sources", number)
	}

	return source.Episode{Number: number, Sources: sources}, nil
}

func withDefault(table *lua.LTable, key, value string) *lua.LTable {
	if getString(table, key) == "" && value != "" {
		table.RawSetString(key, lua.LString(value))
	}
	return table
}
