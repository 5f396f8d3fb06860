package config

// DefaultCurrencies are shown by the currency panel when none are configured.
var DefaultCurrencies = []string{"EUR", "GBP", "JPY", "CAD", "AUD", "INR"}

// DefaultEndpoints returns the public upstream APIs.
func DefaultEndpoints() EndpointsConfig {
	return EndpointsConfig{
		DogAPI:       "https://dog.ceo/api",
		CatAPI:       "https://api.thecatapi.com/v1",
		Currency:     "https://open.er-api.com/v6",
		Geocoding:    "https://geocoding-api.open-meteo.com/v1",
		Forecast:     "https://api.open-meteo.com/v1",
		Jokes:        "https://official-joke-api.appspot.com",
		Movies:       "https://api.themoviedb.org/3",
		MoviePosters: "https://image.tmdb.org/t/p/w200",
		Users:        "https://api.github.com",
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:        8080,
		DataDir:     ".apidash",
		LogLevel:    "info",
		HistoryDays: 30,
		HTTP: HTTPConfig{
			TimeoutSeconds: 10,
			RetryMax:       0,
			UserAgent:      "apidash",
		},
		Endpoints: DefaultEndpoints(),
		Panels: PanelsConfig{
			DogCount:        3,
			DefaultCurrency: "USD",
			Currencies:      append([]string(nil), DefaultCurrencies...),
			MaxMovies:       10,
		},
	}
}
