package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// TMDBKeyEnvVar is read when tmdb_api_key is not set in the config.
const TMDBKeyEnvVar = "TMDB_API_KEY"

// sections are the nested config blocks. Env vars name them with a single
// underscore, e.g. APIDASH_HTTP_RETRY_MAX -> http.retry_max.
var sections = []string{"http", "endpoints", "panels"}

// envKey maps APIDASH_FOO_BAR to its koanf key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APIDASH_"))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (APIDASH_*).
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadFile reads configuration from the given YAML file only, ignoring the
// environment. Use it when the result is written back with Save.
func LoadFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if withEnv {
		if err := k.Load(env.Provider("APIDASH_", ".", envKey), nil); err != nil {
			return nil, fmt.Errorf("loading env overrides: %w", err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// A comma-separated env value arrives as a single string.
	if v, ok := k.Get("panels.currencies").(string); ok {
		cfg.Panels.Currencies = splitAndTrim(v)
	}
	if withEnv && cfg.TMDBAPIKey == "" {
		cfg.TMDBAPIKey = os.Getenv(TMDBKeyEnvVar)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log levels.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q: must be one of trace, debug, info, warn, error", c.LogLevel)
	}

	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be positive")
	}

	if c.HTTP.RetryMax < 0 {
		return fmt.Errorf("http.retry_max must be non-negative")
	}

	if c.HistoryDays < 0 {
		return fmt.Errorf("history_days must be non-negative")
	}

	endpoints := map[string]string{
		"dog_api":       c.Endpoints.DogAPI,
		"cat_api":       c.Endpoints.CatAPI,
		"currency":      c.Endpoints.Currency,
		"geocoding":     c.Endpoints.Geocoding,
		"forecast":      c.Endpoints.Forecast,
		"jokes":         c.Endpoints.Jokes,
		"movies":        c.Endpoints.Movies,
		"movie_posters": c.Endpoints.MoviePosters,
		"users":         c.Endpoints.Users,
	}
	for name, raw := range endpoints {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("endpoints.%s must be an absolute http(s) URL, got %q", name, raw)
		}
	}

	if c.Panels.DogCount < 1 || c.Panels.DogCount > 50 {
		return fmt.Errorf("panels.dog_count must be between 1 and 50")
	}

	if c.Panels.MaxMovies < 0 {
		return fmt.Errorf("panels.max_movies must be non-negative")
	}

	return nil
}

// splitAndTrim splits a comma-separated string and drops empty items.
func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
