package catalog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Setenv(EnvMouserAPIKey, "")
	t.Setenv(EnvCatalogProvider, "")

	t.Run("explicit local provider", func(t *testing.T) {
		p, err := New(Config{Provider: "local"}, zerolog.Nop())
		require.NoError(t, err)
		defer func() { _ = p.Close() }()
		assert.Equal(t, ProviderLocal, p.Provider())
	})

	t.Run("no api key auto-detects local", func(t *testing.T) {
		p, err := New(Config{}, zerolog.Nop())
		require.NoError(t, err)
		defer func() { _ = p.Close() }()
		assert.Equal(t, ProviderLocal, p.Provider())
	})

	t.Run("api key auto-detects mouser with local fallback", func(t *testing.T) {
		p, err := New(Config{APIKey: "test-key"}, zerolog.Nop())
		require.NoError(t, err)
		defer func() { _ = p.Close() }()
		assert.Equal(t, "mouser+local", p.Provider())
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		_, err := New(Config{Provider: "warehouse"}, zerolog.Nop())
		assert.ErrorIs(t, err, ErrUnsupportedProvider)
	})
}
