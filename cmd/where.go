package cmd

import (
	"os"

	"github.com/resolver-cli/resolver/color"
	"github.com/resolver-cli/resolver/style"
	"github.com/resolver-cli/resolver/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type whereTarget struct {
	name     string
	where    func() string
	argLong  string
	argShort mo.Option[string]
	hidden   bool
}

var wherePaths = []*whereTarget{
	{"Config", where.Config, "config", mo.Some("c"), false},
	{"Providers", where.Providers, "providers", mo.Some("p"), false},
	{"Registry", where.Registry, "registry", mo.Some("r"), false},
	{"Logs", where.Logs, "logs", mo.Some("l"), false},
	{"Cache", where.Cache, "cache", mo.None[string](), true},
	{"Queries", where.Queries, "queries", mo.None[string](), true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range wherePaths {
		if short, ok := t.argShort.Get(); ok {
			whereCmd.Flags().BoolP(t.argLong, short, false, t.name+" path")
		} else {
			whereCmd.Flags().Bool(t.argLong, false, t.name+" path")
		}

		if t.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(t.argLong))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(t *whereTarget, _ int) string {
		return t.argLong
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show the paths used for configuration, provider scripts and logs",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(t.argLong)) {
				cmd.Println(t.where())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Filter(wherePaths, func(t *whereTarget, _ int) bool { return !t.hidden })

		for i, t := range visible {
			cmd.Printf("%s %s\n", header(t.name+"?"), style.Fg(color.Yellow)("--"+t.argLong))
			cmd.Println(t.where())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}
