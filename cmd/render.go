package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/resolver-cli/resolver/color"
	"github.com/resolver-cli/resolver/icon"
	"github.com/resolver-cli/resolver/quality"
	"github.com/resolver-cli/resolver/source"
	"github.com/resolver-cli/resolver/style"
	"github.com/resolver-cli/resolver/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func addJsonFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

func wantsJson(cmd *cobra.Command) bool {
	return lo.Must(cmd.Flags().GetBool("json"))
}

func writeJson(out io.Writer, v any) {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	handleErr(encoder.Encode(v))
}

// line fits a row to the terminal width.
func line(s string) string {
	return style.Truncate(util.TerminalWidth(80))(s)
}

func kindIcon(kind source.Kind) string {
	if kind == source.KindShow {
		return icon.Get(icon.Show)
	}
	return icon.Get(icon.Movie)
}

func printEntries(out io.Writer, entries []source.Entry) {
	for i, e := range entries {
		_, _ = fmt.Fprintln(out, line(fmt.Sprintf(
			"%s %s %s %s",
			style.Faint(fmt.Sprintf("%3d", i)),
			kindIcon(e.Kind),
			style.Bold(e.Title),
			style.Fg(color.Gray)(e.URL),
		)))
	}
}

func printSections(out io.Writer, sections []source.Section) {
	for i, s := range sections {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintln(out, style.Title(s.Title))
		printEntries(out, s.Entries)
	}
}

func printHosts(out io.Writer, hosts []source.Host, indent string) {
	for _, h := range hosts {
		_, _ = fmt.Fprintln(out, line(indent+style.Fg(color.Yellow)(h.URL)))
	}
}

func printMovie(out io.Writer, movie source.Movie) {
	_, _ = fmt.Fprintf(out, "%s %s\n", kindIcon(source.KindMovie), style.Bold(movie.Title))
	_, _ = fmt.Fprintln(out, style.Faint(util.Quantify(len(movie.Sources), "source", "sources")))
	printHosts(out, movie.Sources, "  ")
}

func printShow(out io.Writer, show source.Show) {
	_, _ = fmt.Fprintf(out, "%s %s\n", kindIcon(source.KindShow), style.Bold(show.Title))
	_, _ = fmt.Fprintln(out, style.Faint(fmt.Sprintf(
		"%s, %s",
		util.Quantify(len(show.Seasons), "season", "seasons"),
		util.Quantify(show.Episodes(), "episode", "episodes"),
	)))

	for _, season := range show.Seasons {
		_, _ = fmt.Fprintln(out, style.Fg(color.Purple)(fmt.Sprintf("Season %d", season.Number)))
		for _, episode := range season.Episodes {
			_, _ = fmt.Fprintf(out, "  %s\n", style.Bold(fmt.Sprintf("Episode %d", episode.Number)))
			printHosts(out, episode.Sources, "    ")
		}
	}
}

func qualityTag(q quality.Quality) string {
	switch {
	case q.Priority() >= quality.P1080.Priority():
		return style.Tag(color.New("0"), color.Green)(q.Label())
	case q.Priority() >= quality.P480.Priority():
		return style.Tag(color.New("0"), color.Yellow)(q.Label())
	default:
		return style.Tag(color.New("0"), color.Gray)(q.Label())
	}
}

func printStreams(out io.Writer, streams []source.Stream) {
	for _, s := range streams {
		compatible := ""
		if !s.PlayerCompatible() {
			compatible = style.Faint(" (needs headers or an HLS player)")
		}
		_, _ = fmt.Fprintln(out, line(fmt.Sprintf("%s %s %s%s", qualityTag(s.Quality), style.Faint(s.Resolver), s.URL, compatible)))
	}
}
