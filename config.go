package privacykit

import (
	"log/slog"

	"github.com/dmitrymomot/privacykit/pkg/config"
	"github.com/dmitrymomot/privacykit/pkg/logger"
)

// Config holds gateway settings read from the environment.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"privacykit"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	StripHTML      bool `env:"PRIVACY_STRIP_HTML" envDefault:"true"`
	StripAllStyles bool `env:"PRIVACY_STRIP_ALL_STYLES" envDefault:"true"`
	// MaxOutputLen caps SanitizeHTML output in runes; zero disables the cap.
	MaxOutputLen int `env:"PRIVACY_MAX_OUTPUT_LEN" envDefault:"0"`
	// MaxContentChars is the length limit enforced by SanitizeContent.
	MaxContentChars int `env:"PRIVACY_MAX_CONTENT_CHARS" envDefault:"100000"`
	// TokenBudget limits PrepareText output; zero disables the budget.
	TokenBudget   int `env:"PRIVACY_TOKEN_BUDGET" envDefault:"0"`
	MaxInputBytes int `env:"PRIVACY_MAX_INPUT_BYTES" envDefault:"1048576"`

	// CategoriesFile is an optional YAML file with extra allowlist categories.
	CategoriesFile string `env:"PRIVACY_CATEGORIES_FILE"`
}

// DefaultConfig returns the same values as an empty environment.
func DefaultConfig() Config {
	return Config{
		Env:             logger.EnvDevelopment,
		ServiceName:     "privacykit",
		LogLevel:        "info",
		StripHTML:       true,
		StripAllStyles:  true,
		MaxContentChars: 100000,
		MaxInputBytes:   1 << 20,
	}
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	verr := NewValidationError()
	if c.MaxOutputLen < 0 {
		verr.Add("max_output_len", "must not be negative")
	}
	if c.MaxContentChars <= 0 {
		verr.Add("max_content_chars", "must be positive")
	}
	if c.TokenBudget < 0 {
		verr.Add("token_budget", "must not be negative")
	}
	if c.MaxInputBytes <= 0 {
		verr.Add("max_input_bytes", "must be positive")
	}
	if c.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
			verr.Add("log_level", "unknown level "+c.LogLevel)
		}
	}
	if verr.IsEmpty() {
		return nil
	}
	return verr
}
