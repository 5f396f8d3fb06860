package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/apidash/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize apidash configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for the server port, panel defaults and the TMDB API key, and writes a .apidash.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
