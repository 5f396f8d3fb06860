package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "apidash",
	Short: "A dashboard of independent public API panels",
	Long: `apidash serves a dashboard where every panel is bound to one public
web API: dog and cat pictures, exchange rates, weather, jokes, trending
movies and user profiles. Each button press performs one fetch and renders
the result into its panel. The same panels are available from the command
line and as MCP tools for AI agents.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".apidash.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
