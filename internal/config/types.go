package config

// HTTPConfig controls the outbound client used for every upstream call.
type HTTPConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	RetryMax       int    `yaml:"retry_max" koanf:"retry_max"`
	UserAgent      string `yaml:"user_agent" koanf:"user_agent"`
}

// EndpointsConfig holds the base URL of each upstream API.
type EndpointsConfig struct {
	DogAPI       string `yaml:"dog_api" koanf:"dog_api"`
	CatAPI       string `yaml:"cat_api" koanf:"cat_api"`
	Currency     string `yaml:"currency" koanf:"currency"`
	Geocoding    string `yaml:"geocoding" koanf:"geocoding"`
	Forecast     string `yaml:"forecast" koanf:"forecast"`
	Jokes        string `yaml:"jokes" koanf:"jokes"`
	Movies       string `yaml:"movies" koanf:"movies"`
	MoviePosters string `yaml:"movie_posters" koanf:"movie_posters"`
	Users        string `yaml:"users" koanf:"users"`
}

// PanelsConfig tunes the built-in panels.
type PanelsConfig struct {
	DogCount        int      `yaml:"dog_count" koanf:"dog_count"`
	DefaultCity     string   `yaml:"default_city" koanf:"default_city"`
	DefaultCurrency string   `yaml:"default_currency" koanf:"default_currency"`
	Currencies      []string `yaml:"currencies" koanf:"currencies"`
	MaxMovies       int      `yaml:"max_movies" koanf:"max_movies"`
}

// Config is the top-level apidash configuration, corresponding to .apidash.yml.
type Config struct {
	Port            int             `yaml:"port" koanf:"port"`
	DataDir         string          `yaml:"data_dir" koanf:"data_dir"`
	LogLevel        string          `yaml:"log_level" koanf:"log_level"`
	AllowAllOrigins bool            `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	HistoryDays     int             `yaml:"history_days" koanf:"history_days"`
	TMDBAPIKey      string          `yaml:"tmdb_api_key" koanf:"tmdb_api_key"`
	HTTP            HTTPConfig      `yaml:"http" koanf:"http"`
	Endpoints       EndpointsConfig `yaml:"endpoints" koanf:"endpoints"`
	Panels          PanelsConfig    `yaml:"panels" koanf:"panels"`
}
