package cmd

import (
	"context"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/apidash/internal/mcp"
)

var serveNoHistory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing one fetch tool per dashboard panel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		registry, err := buildRegistry(cfg, logger)
		if err != nil {
			return err
		}

		var srv *mcpserver.Server
		mcpserver.Version = Version
		if serveNoHistory {
			srv = mcpserver.NewServer(registry, nil, logger)
		} else {
			store, database, err := openHistory(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			defer database.Close()
			srv = mcpserver.NewServer(registry, store, logger)
		}

		logger.Info().Int("tools", len(registry.List())).Msg("apidash MCP server started on stdio")
		return srv.Serve()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveNoHistory, "no-history", false, "do not record tool calls in the fetch history")
	rootCmd.AddCommand(serveCmd)
}
