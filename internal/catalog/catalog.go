// Package catalog provides part catalog providers: the Mouser
// Electronics API client, a SQLite-backed local sample catalog, and a
// fallback composition that degrades from the remote API to local data.
//
// Providers never surface transport failures to the search core beyond
// their error return; callers are expected to treat a provider error as
// an empty result set and continue.
package catalog

import (
	"context"
	"errors"

	"github.com/partscout/partscout/pkg/types"
)

// Common errors
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrProviderFailed       = errors.New("catalog provider failed")
	ErrUnsupportedProvider  = errors.New("unsupported catalog provider")
	ErrNoProviderConfigured = errors.New("no catalog provider configured")
)

// DefaultSearchLimit bounds catalog responses when the caller does not
// specify a limit.
const DefaultSearchLimit = 20

// Provider is the catalog collaborator interface consumed by the search
// core. Implementations return at most limit part records for a search
// term, in the catalog's own relevance order.
type Provider interface {
	// Search returns part records matching term, bounded by limit.
	Search(ctx context.Context, term string, limit int) ([]types.Part, error)

	// Provider returns the provider name for logging and diagnostics.
	Provider() string

	// Close releases any resources held by the provider.
	Close() error
}

// validateSearch normalizes and validates search arguments shared by
// all providers.
func validateSearch(term string, limit int) (int, error) {
	if term == "" {
		return 0, ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return limit, nil
}
