package assistant

import (
	"context"
	"strings"

	"github.com/partscout/partscout/pkg/types"
)

// ProviderStatic is the provider name of the keyword-table assistant.
const ProviderStatic = "static"

// enhancement maps a trigger substring to a replacement search term.
// Entries are checked in order; the first trigger contained in the
// lowercased query wins.
type enhancement struct {
	trigger string
	term    string
}

// staticEnhancements is the keyword table used when no AI provider is
// configured.
var staticEnhancements = []enhancement{
	{"arduino uno", "Arduino Uno"},
	{"lm358", "LM358"},
	{"esp32", "ESP32"},
	{"resistor", "resistor"},
	{"capacitor", "capacitor"},
	{"transistor", "transistor"},
	{"microcontroller", "microcontroller"},
	{"amplifier", "amplifier"},
	{"wifi", "WiFi"},
	{"bluetooth", "Bluetooth"},
	{"10k", "10k"},
	{"ohm", "ohm"},
}

// StaticProvider is an AI-less Assistant. Queries are enhanced with a
// fixed keyword table and no recommendations are generated, which makes
// the orchestrator fall through to its deterministic templates.
type StaticProvider struct{}

// NewStaticProvider creates the keyword-table assistant.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// EnhanceQuery implements Assistant.
func (s *StaticProvider) EnhanceQuery(ctx context.Context, query, userContext string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	lower := strings.ToLower(query)
	for _, e := range staticEnhancements {
		if strings.Contains(lower, e.trigger) {
			return e.term, nil
		}
	}
	return query, nil
}

// GenerateRecommendations implements Assistant. The static provider has
// nothing to say; an empty result triggers the templated fallback.
func (s *StaticProvider) GenerateRecommendations(ctx context.Context, results []types.Part, query string) ([]string, error) {
	return nil, nil
}

// Provider implements Assistant.
func (s *StaticProvider) Provider() string {
	return ProviderStatic
}

// Close implements Assistant.
func (s *StaticProvider) Close() error {
	return nil
}
