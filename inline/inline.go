// Package inline is the non-interactive mode: search, select, resolve and print.
package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	var entries []source.Entry
	bySource := make(map[string]source.Source)
	for _, src := range options.Sources {
		found, err := src.Search(ctx, options.Keyword, 1)
		if errors.Is(err, source.ErrNoContent) {
			continue
		}
		if err != nil {
			return fmt.Errorf("search failed for %s: %w", src.Name(), err)
		}

		for _, e := range found {
			bySource[e.URL] = src
		}
		entries = append(entries, found...)
	}

	selected := entries
	if picker, ok := options.Picker.Get(); ok {
		selected = picker(entries)
	}

	items := make([]*Item, 0, len(selected))
	for _, entry := range selected {
		item, err := resolve(ctx, bySource[entry.URL], entry, options)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	if options.Json {
		return writeJson(options.Out, items, options.Keyword)
	}

	return writeText(options.Out, items)
}

func resolve(ctx context.Context, src source.Source, entry source.Entry, options *Options) (*Item, error) {
	item := &Item{Entry: entry}

	switch entry.Kind {
	case source.KindShow:
		show, err := src.ShowDetails(ctx, entry.URL)
		if err != nil {
			return nil, err
		}
		if filter, ok := options.EpisodesFilter.Get(); ok {
			show.Seasons = filter(show.Seasons)
		}
		item.Show = &show

		if options.Streams {
			for _, season := range show.Seasons {
				for _, episode := range season.Episodes {
					found, err := options.Extractors.Extract(ctx, episode.Sources)
					if err != nil {
						log.Warnf("no streams for %s S%dE%d: %v", entry.Title, season.Number, episode.Number, err)
						continue
					}
					item.Episodes = append(item.Episodes, EpisodeStreams{
						Season:  season.Number,
						Episode: episode.Number,
						Streams: found,
					})
				}
			}
		}
	default:
		movie, err := src.MovieDetails(ctx, entry.URL)
		if err != nil {
			return nil, err
		}
		item.Movie = &movie

		if options.Streams {
			found, err := options.Extractors.Extract(ctx, movie.Sources)
			if err != nil {
				log.Warnf("no streams for %s: %v", entry.Title, err)
			}
			item.Streams = found
		}
	}

	return item, nil
}

func writeJson(out io.Writer, items []*Item, keyword string) error {
	data, err := asJson(items, keyword)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// writeText prints one URL per line: streams when resolved, hosts otherwise.
func writeText(out io.Writer, items []*Item) error {
	var lines []string
	for _, item := range items {
		switch {
		case len(item.Streams) > 0:
			lines = append(lines, lo.Map(item.Streams, func(s source.Stream, _ int) string { return s.URL })...)
		case len(item.Episodes) > 0:
			for _, e := range item.Episodes {
				lines = append(lines, lo.Map(e.Streams, func(s source.Stream, _ int) string { return s.URL })...)
			}
		case item.Movie != nil:
			lines = append(lines, lo.Map(item.Movie.Sources, func(h source.Host, _ int) string { return h.URL })...)
		case item.Show != nil:
			for _, season := range item.Show.Seasons {
				for _, episode := range season.Episodes {
					lines = append(lines, lo.Map(episode.Sources, func(h source.Host, _ int) string { return h.URL })...)
				}
			}
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
