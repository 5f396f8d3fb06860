package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/apidash/internal/dashboard"
	"github.com/ziadkadry99/apidash/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the dashboard server",
	Long:  `Starts the apidash web server with the panel dashboard, HTML fragment endpoints, fetch history API and websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}
		logger := newLogger(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		registry, err := buildRegistry(cfg, logger)
		if err != nil {
			return err
		}

		store, database, err := openHistory(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer database.Close()

		dash, err := dashboard.New(registry, store, logger)
		if err != nil {
			return fmt.Errorf("creating dashboard: %w", err)
		}

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowAll:       cfg.AllowAllOrigins,
			RequestTimeout: time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second*2 + 5*time.Second,
		}, logger)
		dash.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown")
			}
		}()

		logger.Info().
			Str("version", Version).
			Int("port", srv.ServerConfig().Port).
			Dur("request_timeout", srv.ServerConfig().RequestTimeout).
			Str("database", database.Path()).
			Int("panels", len(registry.List())).
			Msg("apidash server starting")

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
