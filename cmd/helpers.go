package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/apidash/internal/apis"
	"github.com/ziadkadry99/apidash/internal/config"
	"github.com/ziadkadry99/apidash/internal/db"
	"github.com/ziadkadry99/apidash/internal/history"
	"github.com/ziadkadry99/apidash/internal/httpclient"
	"github.com/ziadkadry99/apidash/internal/logging"
	"github.com/ziadkadry99/apidash/internal/panels"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `apidash init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger writes to stderr so stdout stays usable for command output and MCP.
func newLogger(cfg *config.Config) zerolog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(os.Stderr, level)
}

// buildRegistry wires the HTTP client, API client and panels from config.
func buildRegistry(cfg *config.Config, logger zerolog.Logger) (*panels.Registry, error) {
	getter := httpclient.New(httpclient.Options{
		Timeout:   time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		RetryMax:  cfg.HTTP.RetryMax,
		UserAgent: cfg.HTTP.UserAgent,
	}, logger)

	e := cfg.Endpoints
	client := apis.NewClient(getter, apis.Endpoints{
		DogAPI:       e.DogAPI,
		CatAPI:       e.CatAPI,
		Currency:     e.Currency,
		Geocoding:    e.Geocoding,
		Forecast:     e.Forecast,
		Jokes:        e.Jokes,
		Movies:       e.Movies,
		MoviePosters: e.MoviePosters,
		Users:        e.Users,
	}, cfg.TMDBAPIKey)

	reg, err := panels.NewRegistry(client, panels.Options{
		DogCount:        cfg.Panels.DogCount,
		DefaultCity:     cfg.Panels.DefaultCity,
		DefaultCurrency: cfg.Panels.DefaultCurrency,
		Currencies:      cfg.Panels.Currencies,
		MaxMovies:       cfg.Panels.MaxMovies,
	})
	if err != nil {
		return nil, fmt.Errorf("building panels: %w", err)
	}
	return reg, nil
}

// openHistory opens the fetch log in the data directory and drops entries
// older than history_days.
func openHistory(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*history.Store, *db.DB, error) {
	database, err := db.Open(filepath.Join(cfg.DataDir, "apidash.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	store := history.NewStore(database)
	if cfg.HistoryDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -cfg.HistoryDays)
		n, err := store.Prune(ctx, cutoff)
		if err != nil {
			logger.Warn().Err(err).Msg("pruning history")
		} else if n > 0 {
			logger.Debug().Int64("removed", n).Msg("pruned history")
		}
	}
	return store, database, nil
}

// parseParams turns repeated key=value flags into panel params.
func parseParams(pairs []string) (panels.Params, error) {
	params := panels.Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}
