package assistant

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvAssistantProvider selects the assistant provider explicitly:
// "gemini", "static".
const EnvAssistantProvider = "PARTSCOUT_ASSISTANT_PROVIDER"

// Config holds assistant configuration.
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	CacheSize int
}

// NewFromEnv creates an assistant based on environment variables.
// Priority:
//  1. PARTSCOUT_ASSISTANT_PROVIDER (gemini, static)
//  2. GEMINI_API_KEY present: gemini
//  3. Static keyword table
func NewFromEnv() (Assistant, error) {
	return New(Config{
		Provider: os.Getenv(EnvAssistantProvider),
		APIKey:   os.Getenv(EnvGeminiAPIKey),
	})
}

// New creates an assistant with explicit configuration.
func New(cfg Config) (Assistant, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		return newGemini(cfg)
	case ProviderStatic:
		return NewStaticProvider(), nil
	case "":
		if cfg.APIKey != "" || os.Getenv(EnvGeminiAPIKey) != "" {
			return newGemini(cfg)
		}
		return NewStaticProvider(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

func newGemini(cfg Config) (Assistant, error) {
	cache := NewCache(cfg.CacheSize)

	opts := []GeminiOption{}
	if cfg.Model != "" {
		opts = append(opts, WithGeminiModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithGeminiBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithGeminiTimeout(cfg.Timeout))
	}

	return NewGeminiProvider(cfg.APIKey, cache, opts...)
}
