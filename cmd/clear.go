package cmd

import (
	"fmt"

	"github.com/resolver-cli/resolver/color"
	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/icon"
	"github.com/resolver-cli/resolver/query"
	"github.com/resolver-cli/resolver/style"
	"github.com/resolver-cli/resolver/util"
	"github.com/resolver-cli/resolver/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

func removeAll(path func() string) func() error {
	return func() error {
		return filesystem.API().RemoveAll(path())
	}
}

var clearTargets = []clearTarget{
	{"script cache", "cache", mo.Some("c"), removeAll(where.Cache)},
	{"search queries", "queries", mo.Some("q"), query.Forget},
	{"logs", "logs", mo.Some("l"), removeAll(where.Logs)},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, t := range clearTargets {
		help := "clear " + t.name
		if short, ok := t.argShort.Get(); ok {
			clearCmd.Flags().BoolP(t.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(t.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached scripts, remembered queries or logs",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, t := range selected {
			handleErr(t.clear())
			fmt.Printf("%s %s cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)), util.Capitalize(t.name))
		}
	},
}
