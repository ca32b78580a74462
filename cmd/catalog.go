package cmd

import (
	"strings"

	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/query"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(latestCmd)
	latestCmd.PersistentFlags().IntP("page", "P", 1, "Page to fetch, starting at 1")
	addJsonFlag(latestMoviesCmd)
	addJsonFlag(latestShowsCmd)
	latestCmd.AddCommand(latestMoviesCmd, latestShowsCmd)
}

// latestCmd groups the listings of recent additions.
var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the latest additions of a provider",
}

var latestMoviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List the latest movies",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		page := lo.Must(cmd.Flags().GetInt("page"))
		entries, err := selectedSource().LatestMovies(cmd.Context(), page)
		handleErr(err)
		outputEntries(cmd, entries)
	},
}

var latestShowsCmd = &cobra.Command{
	Use:   "shows",
	Short: "List the latest shows",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		page := lo.Must(cmd.Flags().GetInt("page"))
		entries, err := selectedSource().LatestShows(cmd.Context(), page)
		handleErr(err)
		outputEntries(cmd, entries)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("page", "P", 1, "Page to fetch, starting at 1")
	addJsonFlag(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [keyword...]",
	Short: "Search the catalog of a provider",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		keyword := strings.Join(args, " ")
		page := lo.Must(cmd.Flags().GetInt("page"))

		entries, err := selectedSource().Search(cmd.Context(), keyword, page)
		handleErr(err)

		if err := query.Remember(keyword, 1); err != nil {
			log.Warnf("could not remember %q: %v", keyword, err)
		}

		outputEntries(cmd, entries)
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)
	addJsonFlag(homeCmd)
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home page sections of a provider",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sections, err := selectedSource().Home(cmd.Context())
		handleErr(err)

		if wantsJson(cmd) {
			writeJson(cmd.OutOrStdout(), sections)
			return
		}
		printSections(cmd.OutOrStdout(), sections)
	},
}

func init() {
	rootCmd.AddCommand(movieCmd)
	addJsonFlag(movieCmd)
}

var movieCmd = &cobra.Command{
	Use:   "movie <url>",
	Short: "Resolve a movie page into its source hosts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		movie, err := selectedSource().MovieDetails(cmd.Context(), args[0])
		handleErr(err)

		if wantsJson(cmd) {
			writeJson(cmd.OutOrStdout(), movie)
			return
		}
		printMovie(cmd.OutOrStdout(), movie)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	addJsonFlag(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <url>",
	Short: "Resolve a show page into its seasons and episodes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		show, err := selectedSource().ShowDetails(cmd.Context(), args[0])
		handleErr(err)

		if wantsJson(cmd) {
			writeJson(cmd.OutOrStdout(), show)
			return
		}
		printShow(cmd.OutOrStdout(), show)
	},
}

func outputEntries(cmd *cobra.Command, entries []source.Entry) {
	if wantsJson(cmd) {
		writeJson(cmd.OutOrStdout(), entries)
		return
	}
	printEntries(cmd.OutOrStdout(), entries)
}
