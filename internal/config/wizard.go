package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

func validatePort(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return errors.New("port must be a number")
	}
	if n < 1 || n > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

func validateCurrency(input string) error {
	input = strings.TrimSpace(input)
	if len(input) != 3 {
		return errors.New("use a three-letter currency code, e.g. USD")
	}
	for _, r := range strings.ToUpper(input) {
		if r < 'A' || r > 'Z' {
			return errors.New("use a three-letter currency code, e.g. USD")
		}
	}
	return nil
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to apidash! Let's configure your dashboard.")
	fmt.Println()

	// Only file values are written back, never environment overrides.
	cfg, err := LoadFile(path)
	if err != nil {
		cfg = DefaultConfig()
	}

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port to serve the dashboard on",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 2. Weather.
	cityPrompt := promptui.Prompt{
		Label:   "Default city for the weather panel (blank for none)",
		Default: cfg.Panels.DefaultCity,
	}
	city, err := cityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("city prompt: %w", err)
	}
	cfg.Panels.DefaultCity = strings.TrimSpace(city)

	// 3. Currency.
	currencyPrompt := promptui.Prompt{
		Label:    "Base currency",
		Default:  cfg.Panels.DefaultCurrency,
		Validate: validateCurrency,
	}
	currency, err := currencyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("currency prompt: %w", err)
	}
	cfg.Panels.DefaultCurrency = strings.ToUpper(strings.TrimSpace(currency))

	// 4. TMDB key. Stored in the file only when entered here.
	keyPrompt := promptui.Prompt{
		Label: fmt.Sprintf("TMDB API key for trending movies (blank to use $%s)", TMDBKeyEnvVar),
		Mask:  '*',
	}
	key, err := keyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("api key prompt: %w", err)
	}
	if key = strings.TrimSpace(key); key != "" {
		cfg.TMDBAPIKey = key
	}

	// 5. Log level.
	levels := []string{"info", "debug", "warn", "error"}
	levelPrompt := promptui.Select{
		Label: "Log level",
		Items: levels,
	}
	_, level, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log level selection: %w", err)
	}
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Run `apidash server` to start the dashboard.")
	return cfg, nil
}
