package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/resolver-cli/resolver/color"
	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/filesystem"
	"github.com/resolver-cli/resolver/icon"
	"github.com/resolver-cli/resolver/identity"
	"github.com/resolver-cli/resolver/internal/scraper"
	"github.com/resolver-cli/resolver/provider"
	"github.com/resolver-cli/resolver/style"
	"github.com/resolver-cli/resolver/util"
	"github.com/resolver-cli/resolver/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(providersCmd)
}

// providersCmd groups the commands that manage adapters and the registry.
var providersCmd = &cobra.Command{
	Use:     "providers",
	Aliases: []string{"provider"},
	Short:   "Manage built-in, scripted and remote providers",
}

func init() {
	providersCmd.AddCommand(providersListCmd)

	providersListCmd.Flags().BoolP("raw", "r", false, "Print identities only")
	addJsonFlag(providersListCmd)
	providersListCmd.SetOut(os.Stdout)
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every provider identity that can be resolved",
	Run: func(cmd *cobra.Command, args []string) {
		resolver := newResolver(false)
		ids := resolver.Identities()

		if wantsJson(cmd) {
			writeJson(cmd.OutOrStdout(), ids)
			return
		}

		if lo.Must(cmd.Flags().GetBool("raw")) {
			for _, id := range ids {
				cmd.Println(id.String())
			}
			return
		}

		for _, id := range ids {
			tag := style.Fg(color.Local)(icon.Get(icon.Local))
			if id.IsRemote() {
				tag = style.Fg(color.Remote)(icon.Get(icon.Remote))
			}

			name := id.RawValue()
			if c, ok := resolver.Registry().Lookup(id.RawValue()).Get(); ok && c.Title != "" {
				name = fmt.Sprintf("%s %s", name, style.Faint("("+c.Title+")"))
			}

			cmd.Printf("%s %s\n", tag, name)
		}

		if resolver.ForceRemote() {
			cmd.Println()
			cmd.Println(style.Faint("local providers are dispatched remotely"))
		}
	},
}

func init() {
	providersCmd.AddCommand(providersValidateCmd)
}

var providersValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every registry entry resolves",
	Run: func(cmd *cobra.Command, args []string) {
		path := where.Registry()
		registry, err := provider.LoadRegistry(path)
		handleErr(err)

		handleErr(newResolver(false).Validate())
		fmt.Printf(
			"%s %s in %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(registry.Len(), "valid entry", "valid entries"),
			path,
		)
	},
}

func init() {
	providersCmd.AddCommand(providersGenCmd)

	providersGenCmd.Flags().StringP("name", "n", "", "Name of the new provider")
	providersGenCmd.Flags().StringP("url", "u", "", "Base URL of the website")

	lo.Must0(providersGenCmd.MarkFlagRequired("name"))
	lo.Must0(providersGenCmd.MarkFlagRequired("url"))
}

var providersGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a Lua provider script",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name, URL, Author string

			LatestMoviesFn, LatestShowsFn, SearchFn, HomeFn string
			MovieDetailsFn, ShowInfoFn, SeasonEpisodesFn    string
		}{
			Name:             lo.Must(cmd.Flags().GetString("name")),
			URL:              lo.Must(cmd.Flags().GetString("url")),
			Author:           author,
			LatestMoviesFn:   constant.LatestMoviesFn,
			LatestShowsFn:    constant.LatestShowsFn,
			SearchFn:         constant.SearchFn,
			HomeFn:           constant.HomeFn,
			MovieDetailsFn:   constant.MovieDetailsFn,
			ShowInfoFn:       constant.ShowInfoFn,
			SeasonEpisodesFn: constant.SeasonEpisodesFn,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("provider").Funcs(funcMap).Parse(constant.ProviderTemplate)
		handleErr(err)

		target := filepath.Join(where.Providers(), util.SanitizeFilename(s.Name)+constant.ScriptExtension)
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))
		cmd.Println(target)
	},
}

func init() {
	providersCmd.AddCommand(providersInstallCmd)
	providersInstallCmd.Flags().StringP("name", "n", "", "Name to install the script under, defaults to the file name")
}

var providersInstallCmd = &cobra.Command{
	Use:   "install <url>",
	Short: "Download a Lua provider script into the providers directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := lo.Must(cmd.Flags().GetString("name"))
		if name == "" {
			name = util.FileStem(args[0])
		}
		name = util.SanitizeFilename(name)

		if lo.Contains(provider.Builtins().Names(), name) {
			handleErr(fmt.Errorf("%s is a built-in provider name", name))
		}

		path, changed, err := scraper.Install(cmd.Context(), fetcher(), args[0], name)
		handleErr(err)

		if !changed {
			fmt.Printf("%s %s is up to date\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
			return
		}

		fmt.Printf("%s installed %s to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Yellow)(identity.Local(name).String()), path)
	},
}

func init() {
	providersCmd.AddCommand(providersRemoveCmd)

	providersRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Name of the script(s) to remove")
	lo.Must0(providersRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		scripts, err := filesystem.API().ReadDir(where.Providers())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return lo.FilterMap(scripts, func(item os.FileInfo, _ int) (string, bool) {
			if !strings.HasSuffix(item.Name(), constant.ScriptExtension) {
				return "", false
			}
			return util.FileStem(item.Name()), true
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

var providersRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove installed Lua provider scripts",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			path := filepath.Join(where.Providers(), name+constant.ScriptExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}
