package catalog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvCatalogProvider selects the catalog provider explicitly: "mouser",
// "local". When unset, the Mouser client is used if an API key is
// present, always backed by the local sample catalog.
const EnvCatalogProvider = "PARTSCOUT_CATALOG_PROVIDER"

// Config holds catalog provider configuration.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	// LocalPath is the local catalog database path; empty means an
	// in-memory catalog seeded with the sample parts.
	LocalPath string
}

// NewFromEnv creates a catalog provider based on environment variables.
// Priority:
//  1. PARTSCOUT_CATALOG_PROVIDER (mouser, local)
//  2. MOUSER_API_KEY present: Mouser with local fallback
//  3. Local sample catalog
func NewFromEnv(log zerolog.Logger) (Provider, error) {
	return New(Config{
		Provider: os.Getenv(EnvCatalogProvider),
		APIKey:   os.Getenv(EnvMouserAPIKey),
	}, log)
}

// New creates a catalog provider with explicit configuration.
func New(cfg Config, log zerolog.Logger) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderMouser:
		return newMouserWithFallback(cfg, log)
	case ProviderLocal:
		return newLocal(cfg)
	case "":
		// Auto-detect on the API key.
		if cfg.APIKey != "" || os.Getenv(EnvMouserAPIKey) != "" {
			return newMouserWithFallback(cfg, log)
		}
		return newLocal(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

func newMouserWithFallback(cfg Config, log zerolog.Logger) (Provider, error) {
	opts := []MouserOption{WithMouserLogger(log)}
	if cfg.BaseURL != "" {
		opts = append(opts, WithMouserBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithMouserTimeout(cfg.Timeout))
	}

	mouser, err := NewMouserClient(cfg.APIKey, opts...)
	if err != nil {
		return nil, err
	}

	local, err := newLocal(cfg)
	if err != nil {
		_ = mouser.Close()
		return nil, err
	}

	return NewFallbackProvider(mouser, local, log), nil
}

func newLocal(cfg Config) (Provider, error) {
	if cfg.LocalPath != "" {
		return NewLocalCatalog(cfg.LocalPath)
	}
	return NewSampleCatalog()
}
