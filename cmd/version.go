package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/resolver-cli/resolver/color"
	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
	"or": func(s, fallback string) string {
		if s == "" {
			return fallback
		}
		return s
	},
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}      {{ bold .Version }}
  {{ faint "Git Commit" }}   {{ bold (or .Revision "unknown") }}
  {{ faint "Build Date" }}   {{ bold (or .BuiltAt "unknown") }}
  {{ faint "Built By" }}     {{ bold (or .BuiltBy "unknown") }}
  {{ faint "Platform" }}     {{ bold .OS }}/{{ bold .Arch }}
`))

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), map[string]string{
			"App":      constant.Resolver,
			"Version":  constant.Version,
			"Revision": constant.Revision,
			"BuiltAt":  strings.TrimSpace(constant.BuiltAt),
			"BuiltBy":  constant.BuiltBy,
			"OS":       runtime.GOOS,
			"Arch":     runtime.GOARCH,
		}))
	},
}
