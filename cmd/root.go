// Package cmd implements the command-line interface of resolver.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/resolver-cli/resolver/color"
	"github.com/resolver-cli/resolver/constant"
	"github.com/resolver-cli/resolver/icon"
	"github.com/resolver-cli/resolver/key"
	"github.com/resolver-cli/resolver/log"
	"github.com/resolver-cli/resolver/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("provider", "p", "", "Provider to query, as name, local:name or remote:id")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("provider", completionProviders))
	lo.Must0(viper.BindPFlag(key.ProvidersDefault, rootCmd.PersistentFlags().Lookup("provider")))

	rootCmd.PersistentFlags().Bool("force-remote", false, "Dispatch local providers through the registry endpoint of the same id")
	lo.Must0(viper.BindPFlag(key.ProvidersForceRemote, rootCmd.PersistentFlags().Lookup("force-remote")))

	rootCmd.PersistentFlags().String("registry", "", "Path to the provider registry file")
	lo.Must0(viper.BindPFlag(key.ProvidersRegistry, rootCmd.PersistentFlags().Lookup("registry")))
}

// rootCmd is the entry point of the application.
var rootCmd = &cobra.Command{
	Use:   constant.Resolver,
	Short: "Browse movie and show catalogs through pluggable providers",
	Long: style.New().Bold(true).Foreground(color.HiCyan).Render(constant.Resolver) + "\n" +
		style.Italic("    - Browse movie and show catalogs through local, scripted and remote providers"),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
