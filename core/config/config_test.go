package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluxkit/core/config"
)

// Each test uses its own config type: the cache is keyed by concrete type and
// lives for the whole process.

func TestLoad_ParsesEnvironment(t *testing.T) {
	type parseConfig struct {
		Prefix    string `env:"TEST_PARSE_PREFIX" envDefault:"ID_"`
		Threshold int    `env:"TEST_PARSE_THRESHOLD" envDefault:"64"`
	}

	t.Setenv("TEST_PARSE_PREFIX", "CB_")
	t.Setenv("TEST_PARSE_THRESHOLD", "128")

	var cfg parseConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "CB_", cfg.Prefix)
	assert.Equal(t, 128, cfg.Threshold)
}

func TestLoad_Defaults(t *testing.T) {
	type defaultsConfig struct {
		Prefix    string `env:"TEST_DEFAULTS_PREFIX" envDefault:"ID_"`
		Threshold int    `env:"TEST_DEFAULTS_THRESHOLD" envDefault:"64"`
	}

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "ID_", cfg.Prefix)
	assert.Equal(t, 64, cfg.Threshold)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
	}

	t.Setenv("TEST_CACHED_VALUE", "original")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	require.Equal(t, "original", first.Value)

	// Environment changes after the first load are invisible.
	t.Setenv("TEST_CACHED_VALUE", "changed")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second, "second load should return the cached value")
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	var cfg *struct {
		Value string `env:"TEST_NIL_VALUE"`
	}

	err := config.Load(cfg)
	require.ErrorIs(t, err, config.ErrNilConfig)
}

func TestLoad_RequiredMissing(t *testing.T) {
	type requiredConfig struct {
		Secret string `env:"TEST_REQUIRED_SECRET,required"`
	}

	var cfg requiredConfig
	err := config.Load(&cfg)

	require.ErrorIs(t, err, config.ErrParseFailed)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type mustConfig struct {
		Secret string `env:"TEST_MUST_SECRET,required"`
	}

	assert.Panics(t, func() {
		var cfg mustConfig
		config.MustLoad(&cfg)
	})
}

func TestMustLoad_Succeeds(t *testing.T) {
	type mustOKConfig struct {
		Value string `env:"TEST_MUST_OK_VALUE" envDefault:"ok"`
	}

	var cfg mustOKConfig
	assert.NotPanics(t, func() {
		config.MustLoad(&cfg)
	})
	assert.Equal(t, "ok", cfg.Value)
}
