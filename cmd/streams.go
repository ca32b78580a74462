package cmd

import (
	"github.com/resolver-cli/resolver/source"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(streamsCmd)
	addJsonFlag(streamsCmd)
	streamsCmd.Flags().BoolP("best", "b", false, "Print only the best stream")
}

var streamsCmd = &cobra.Command{
	Use:   "streams <host-url...>",
	Short: "Extract playable streams from source hosts",
	Long: `Extract playable streams from the host URLs printed by the movie and show commands.
Streams are printed best quality first, without duplicates.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hosts := lo.Map(args, func(url string, _ int) source.Host { return source.Host{URL: url} })

		found, err := extractors().Extract(cmd.Context(), hosts)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("best")) {
			found = lo.Subset(found, 0, 1)
		}

		if wantsJson(cmd) {
			writeJson(cmd.OutOrStdout(), found)
			return
		}
		printStreams(cmd.OutOrStdout(), found)
	},
}
