// Package commands implements the dapctl CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// cfgFile is the --config flag shared by every subcommand that loads a
// process config.
var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dapctl",
	Short: "DAP core control utility",
	Long: `dapctl is an operator tool for a DAP core deployment.

It validates process configuration, computes durable storage names the way
the core itself would, and enumerates the batch buckets a collect request
covers — all without talking to a live server.

Use "dapctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults to the XDG config location)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(durableNameCmd)
	rootCmd.AddCommand(spanCmd)
	rootCmd.AddCommand(idCmd)
	rootCmd.AddCommand(schemaCmd)
}
