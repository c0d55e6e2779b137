package privacykit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/privacykit"
	"github.com/dmitrymomot/privacykit/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		cfg, err := privacykit.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, privacykit.DefaultConfig(), cfg)
	})

	t.Run("environment", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("APP_ENV", "production")
		t.Setenv("PRIVACY_STRIP_HTML", "false")
		t.Setenv("PRIVACY_TOKEN_BUDGET", "2000")
		t.Setenv("PRIVACY_CATEGORIES_FILE", "/etc/privacykit/categories.yaml")

		cfg, err := privacykit.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Env)
		assert.False(t, cfg.StripHTML)
		assert.True(t, cfg.StripAllStyles)
		assert.Equal(t, 2000, cfg.TokenBudget)
		assert.Equal(t, "/etc/privacykit/categories.yaml", cfg.CategoriesFile)
	})

	t.Run("invalid values", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("PRIVACY_MAX_CONTENT_CHARS", "-1")
		t.Setenv("LOG_LEVEL", "loud")

		_, err := privacykit.LoadConfig()
		require.ErrorIs(t, err, privacykit.ErrInvalidConfig)

		var verr privacykit.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("max_content_chars"))
		assert.True(t, verr.Has("log_level"))
		assert.False(t, verr.Has("max_input_bytes"))
	})

	t.Run("unparsable value", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("PRIVACY_TOKEN_BUDGET", "lots")

		_, err := privacykit.LoadConfig()
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestValidationError(t *testing.T) {
	verr := privacykit.NewValidationError()
	assert.True(t, verr.IsEmpty())
	assert.Equal(t, "invalid configuration", verr.Error())

	verr.Add("token_budget", "must not be negative")
	verr.Add("max_input_bytes", "must be positive")
	verr.Add("max_input_bytes", "second message")

	assert.False(t, verr.IsEmpty())
	assert.Equal(t, "must be positive", verr.Get("max_input_bytes"))
	assert.Empty(t, verr.Get("log_level"))
	assert.Equal(t,
		"invalid configuration: max_input_bytes: must be positive, token_budget: must not be negative",
		verr.Error())
}
