package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv points the config file lookup at an absent path and blanks
// the bare API keys, then runs the test outside any directory holding a
// partscout.yaml.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("MOUSER_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 80, cfg.Search.FuzzyThreshold)
	assert.Equal(t, 60, cfg.Search.SimilarityThreshold)
	assert.Equal(t, 20, cfg.Search.CatalogLimit)
	assert.Equal(t, 5, cfg.Search.SimilarLimit)
	assert.Equal(t, 100, cfg.Session.MaxHistory)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Mouser.APIKey)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "partscout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
search:
  fuzzy_threshold: 70
`), 0o644))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 70, cfg.Search.FuzzyThreshold)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60, cfg.Search.SimilarityThreshold)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)

	t.Setenv("PARTSCOUT_SERVER_PORT", "9999")
	t.Setenv("PARTSCOUT_SEARCH_FUZZY_THRESHOLD", "65")
	t.Setenv("PARTSCOUT_GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 65, cfg.Search.FuzzyThreshold)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "partscout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PARTSCOUT_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadBareAPIKeys(t *testing.T) {
	clearEnv(t)

	t.Setenv("MOUSER_API_KEY", "m-key")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "m-key", cfg.Mouser.APIKey)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := defaultConfig()
		return cfg
	}

	t.Run("defaults validate", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("port out of range", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("fuzzy threshold out of range", func(t *testing.T) {
		cfg := base()
		cfg.Search.FuzzyThreshold = 101
		assert.Error(t, cfg.Validate())
	})

	t.Run("similarity threshold out of range", func(t *testing.T) {
		cfg := base()
		cfg.Search.SimilarityThreshold = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("similar limit below one", func(t *testing.T) {
		cfg := base()
		cfg.Search.SimilarLimit = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "server.port", envTransform("PARTSCOUT_SERVER_PORT"))
	assert.Equal(t, "search.fuzzy_threshold", envTransform("PARTSCOUT_SEARCH_FUZZY_THRESHOLD"))
	assert.Equal(t, "mouser.api_key", envTransform("PARTSCOUT_MOUSER_API_KEY"))
}
