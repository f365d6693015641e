// Package config loads partscout configuration from layered sources:
// built-in defaults, an optional YAML file, and environment variables,
// in ascending precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/partscout/partscout/internal/logging"
)

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"partscout.yaml",
	"partscout.yml",
	"/etc/partscout/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "PARTSCOUT_CONFIG"

// envPrefix namespaces partscout environment variables, e.g.
// PARTSCOUT_SERVER_PORT -> server.port.
const envPrefix = "PARTSCOUT_"

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig   `koanf:"server"`
	Mouser  MouserConfig   `koanf:"mouser"`
	Gemini  GeminiConfig   `koanf:"gemini"`
	Search  SearchConfig   `koanf:"search"`
	Session SessionConfig  `koanf:"session"`
	Logging logging.Config `koanf:"logging"`
}

// ServerConfig configures the HTTP daemon.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// MouserConfig configures the Mouser catalog client. An empty APIKey
// selects the local sample catalog.
type MouserConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	// LocalPath points the local/fallback catalog at a database file;
	// empty means in-memory sample data.
	LocalPath string `koanf:"local_path"`
}

// GeminiConfig configures the AI assistant. An empty APIKey selects
// the static keyword-table assistant.
type GeminiConfig struct {
	APIKey    string        `koanf:"api_key"`
	Model     string        `koanf:"model"`
	Timeout   time.Duration `koanf:"timeout"`
	CacheSize int           `koanf:"cache_size"`
}

// SearchConfig holds the ranking knobs. The thresholds are
// configuration, not constants, so an operator can tune match
// strictness without a rebuild.
type SearchConfig struct {
	FuzzyThreshold      int `koanf:"fuzzy_threshold"`
	SimilarityThreshold int `koanf:"similarity_threshold"`
	CatalogLimit        int `koanf:"catalog_limit"`
	SimilarLimit        int `koanf:"similar_limit"`
}

// SessionConfig holds session history settings.
type SessionConfig struct {
	// MaxHistory caps per-user history; 0 disables the cap.
	MaxHistory int `koanf:"max_history"`
}

// defaultConfig returns the built-in defaults, applied first and then
// overridden by config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Mouser: MouserConfig{
			APIKey:  "",
			BaseURL: "",
			Timeout: 30 * time.Second,
		},
		Gemini: GeminiConfig{
			APIKey:    "",
			Model:     "gemini-1.5-flash",
			Timeout:   30 * time.Second,
			CacheSize: 1000,
		},
		Search: SearchConfig{
			FuzzyThreshold:      80,
			SimilarityThreshold: 60,
			CatalogLimit:        20,
			SimilarLimit:        5,
		},
		Session: SessionConfig{
			MaxHistory: 100,
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration with precedence ENV > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// PARTSCOUT_SERVER_PORT -> server.port, PARTSCOUT_MOUSER_API_KEY ->
	// mouser.api_key. Only the first underscore separates the section.
	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Bare collaborator keys work without the PARTSCOUT_ prefix too.
	if cfg.Mouser.APIKey == "" {
		cfg.Mouser.APIKey = os.Getenv("MOUSER_API_KEY")
	}
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise fail at a distance.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Search.FuzzyThreshold < 0 || c.Search.FuzzyThreshold > 100 {
		return fmt.Errorf("search.fuzzy_threshold must be in 0..100, got %d", c.Search.FuzzyThreshold)
	}
	if c.Search.SimilarityThreshold < 0 || c.Search.SimilarityThreshold > 100 {
		return fmt.Errorf("search.similarity_threshold must be in 0..100, got %d", c.Search.SimilarityThreshold)
	}
	if c.Search.SimilarLimit < 1 {
		return fmt.Errorf("search.similar_limit must be >= 1, got %d", c.Search.SimilarLimit)
	}
	return nil
}

// envTransform maps PARTSCOUT_SECTION_SOME_KEY to section.some_key.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) != 2 {
		return s
	}
	return parts[0] + "." + parts[1]
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
