package cmd

import (
	"github.com/resolver-cli/resolver/host"
	"github.com/resolver-cli/resolver/key"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("address", "a", "", "Address to listen on")
	lo.Must0(viper.BindPFlag(key.ServeAddress, serveCmd.Flags().Lookup("address")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local providers to remote clients",
	Long: `Serve every built-in and scripted provider over HTTP, so that a remote registry entry
on another machine can point at this process:

  [[providers]]
  id = "moviebox"
  kind = "remote"
  endpoint = "http://this-host:8080/providers/moviebox"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		server := host.New(newResolver(true))
		handleErr(server.Run(cmd.Context(), viper.GetString(key.ServeAddress)))
	},
}
