// Package assistant provides the AI collaborator of the search engine:
// natural-language query enhancement and recommendation text generation.
//
// Two providers are available: a Gemini-backed provider and a static
// provider that enhances queries with a fixed keyword table and yields
// no generated recommendations. Callers must treat any failure here as
// non-fatal; the search pipeline degrades to the original query and to
// templated recommendations.
package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/partscout/partscout/pkg/types"
)

// Common errors
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmptyQuery          = errors.New("query cannot be empty")
	ErrProviderFailed      = errors.New("assistant provider failed")
	ErrEmptyResponse       = errors.New("assistant returned empty response")
	ErrUnsupportedProvider = errors.New("unsupported assistant provider")
)

// Assistant is the AI collaborator interface.
type Assistant interface {
	// EnhanceQuery turns free text plus optional context into a better
	// catalog search term. An error or empty result means "no
	// enhancement"; callers proceed with the original query.
	EnhanceQuery(ctx context.Context, query, userContext string) (string, error)

	// GenerateRecommendations produces short human-readable
	// recommendation lines for a ranked result set. At most five lines
	// are returned.
	GenerateRecommendations(ctx context.Context, results []types.Part, query string) ([]string, error)

	// Provider returns the provider name.
	Provider() string

	// Close releases any resources held by the assistant.
	Close() error
}

// MaxRecommendations bounds generated recommendation lists.
const MaxRecommendations = 5

// Cache is an in-memory LRU cache of query enhancements keyed by
// content hash. Enhancement is deterministic enough to cache: the same
// query and context always produce an equally valid search term, and
// skipping a round trip matters on the personalization path.
type Cache struct {
	cache *lru.Cache[string, string]
}

// NewCache creates an enhancement cache with LRU eviction.
func NewCache(maxLen int) *Cache {
	if maxLen <= 0 {
		maxLen = 1000
	}
	cache, err := lru.New[string, string](maxLen)
	if err != nil {
		cache, _ = lru.New[string, string](1000)
	}
	return &Cache{cache: cache}
}

// Get retrieves a cached enhancement.
func (c *Cache) Get(hash string) (string, bool) {
	return c.cache.Get(hash)
}

// Set stores an enhancement with automatic LRU eviction.
func (c *Cache) Set(hash, enhanced string) {
	c.cache.Add(hash, enhanced)
}

// Size returns the current cache size.
func (c *Cache) Size() int {
	return c.cache.Len()
}

// ComputeHash hashes a query/context pair for cache keying.
func ComputeHash(query, userContext string) string {
	h := sha256.Sum256([]byte(query + "\x00" + userContext))
	return hex.EncodeToString(h[:])
}

// ValidateQuery validates enhancement input.
func ValidateQuery(query string) error {
	if query == "" {
		return ErrEmptyQuery
	}
	return nil
}
