// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct annotated with `env` and
//     `envDefault` tags and caches the result per type.
//   - MustLoad and MustLoadEnv panic instead of returning an error.
//   - ResetCache and ForceReloadConfig drop cached values, mostly for tests.
//
// # Usage
//
//	type Config struct {
//	    MaxContentChars int      `env:"PRIVACY_MAX_CONTENT_CHARS" envDefault:"100000"`
//	    LogSensitiveKeys []string `env:"PRIVACY_LOG_SENSITIVE_KEYS" envSeparator:","`
//	}
//
//	if err := config.LoadEnv("./deploy/.env"); err != nil {
//	    return err
//	}
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Parsing for a given type happens at most once, even under concurrent
// callers. A failed parse is not cached, so the next call retries.
//
// # Errors
//
//   - ErrParsingConfig: the environment does not fit the struct.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrNilPointer: Load was called with nil.
//   - ErrConfigNotLoaded: the cached value is missing after a load.
package config
