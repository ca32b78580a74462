package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/inline"
	"github.com/resolver-cli/resolver/query"
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "Keyword to search for")
	inlineCmd.Flags().StringP("pick", "k", "", "Selector for the search results")
	inlineCmd.Flags().StringP("episodes", "e", "", "Selector for the episodes of selected shows")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	inlineCmd.Flags().BoolP("include-streams", "V", false, "Extract the streams of the selected movies and episodes")
	inlineCmd.Flags().StringP("output", "o", "", "Write the output to a file")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Search, select and resolve in one non-interactive step",
	Long: `Search a provider, select results and resolve them to hosts or streams.

Result selectors:
  first - first result
  last - last result
  all - every result
  exact:<title> - results with that exact title, case insensitive
  [number] - result by index, starting from 0

Episode selectors:
  all - every episode
  first - first episode of the first season
  last - last episode of the last season
  [season] - every episode of a season
  [season]:[episode] - one episode
  [season]:[from]-[to] - a range of episodes

When using the json flag the result selector can be omitted to select everything.`,
	PreRun: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(cmd.MarkFlagRequired("pick"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		picker := mo.None[inline.Picker]()
		if pick := lo.Must(cmd.Flags().GetString("pick")); pick != "" {
			kind, value, _ := strings.Cut(pick, ":")
			fn, err := inline.ParsePicker(kind, value)
			handleErr(err)
			picker = mo.Some(fn)
		}

		filter := mo.None[inline.EpisodesFilter]()
		if episodes := lo.Must(cmd.Flags().GetString("episodes")); episodes != "" {
			fn, err := inline.ParseEpisodesFilter(episodes)
			handleErr(err)
			filter = mo.Some(fn)
		}

		keyword := lo.Must(cmd.Flags().GetString("query"))

		handleErr(inline.Run(cmd.Context(), &inline.Options{
			Out:            writer,
			Sources:        []source.Source{selectedSource()},
			Keyword:        keyword,
			Picker:         picker,
			EpisodesFilter: filter,
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			Streams:        lo.Must(cmd.Flags().GetBool("include-streams")),
			Extractors:     extractors(),
		}))

		_ = query.Remember(keyword, 1)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the inline output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeJson(cmd.OutOrStdout(), inline.Schema())
	},
}
