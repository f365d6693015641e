// Package engine coordinates one search request end to end: session
// recording, AI query enhancement, catalog search, fuzzy re-ranking,
// recommendation text, and personalization.
//
// Collaborator failures never abort a search. Each step degrades
// independently: a failed enhancement keeps the original query, a
// failed catalog call yields an empty result set, failed or empty AI
// recommendations fall back to deterministic templates. The only error
// a caller sees from Search is an empty query, rejected before any
// collaborator is touched.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/partscout/partscout/internal/assistant"
	"github.com/partscout/partscout/internal/catalog"
	"github.com/partscout/partscout/internal/ranker"
	"github.com/partscout/partscout/internal/recommend"
	"github.com/partscout/partscout/internal/session"
	"github.com/partscout/partscout/internal/similar"
	"github.com/partscout/partscout/pkg/types"
)

// maxFallbackRecommendations caps the templated recommendation list
// used when the AI generator fails or returns nothing.
const maxFallbackRecommendations = 3

// Engine is the search orchestrator. Construct with New; the zero
// value is not usable.
type Engine struct {
	catalog   catalog.Provider
	assistant assistant.Assistant
	sessions  session.Store
	ranker    *ranker.Ranker
	finder    *similar.Finder
	personal  *recommend.Engine

	fuzzyThreshold      int
	similarityThreshold int
	catalogLimit        int
	similarLimit        int

	log zerolog.Logger
	now func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithFuzzyThreshold overrides the ranking threshold (default 80).
func WithFuzzyThreshold(threshold int) Option {
	return func(e *Engine) { e.fuzzyThreshold = threshold }
}

// WithSimilarityThreshold overrides the similar-parts description
// similarity threshold (default 60).
func WithSimilarityThreshold(threshold int) Option {
	return func(e *Engine) { e.similarityThreshold = threshold }
}

// WithCatalogLimit overrides how many raw candidates each catalog
// search requests.
func WithCatalogLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.catalogLimit = limit
		}
	}
}

// WithSimilarLimit overrides the default similar-parts result count.
func WithSimilarLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.similarLimit = limit
		}
	}
}

// WithLogger attaches a logger to the engine and its sub-components.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock overrides the timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine over its three collaborators. The session
// store is injected rather than owned so a bounded or shared
// implementation can replace the in-memory one without touching
// ranking logic.
func New(provider catalog.Provider, ai assistant.Assistant, sessions session.Store, opts ...Option) *Engine {
	e := &Engine{
		catalog:             provider,
		assistant:           ai,
		sessions:            sessions,
		ranker:              ranker.New(),
		fuzzyThreshold:      ranker.DefaultThreshold,
		similarityThreshold: similar.DefaultSimilarityThreshold,
		catalogLimit:        catalog.DefaultSearchLimit,
		similarLimit:        similar.DefaultLimit,
		log:                 zerolog.Nop(),
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	// Sub-components are built once all options have settled so they
	// see the final thresholds and logger.
	e.finder = similar.New(e.catalog,
		similar.WithThreshold(e.similarityThreshold),
		similar.WithLogger(e.log))
	e.personal = recommend.New(e.sessions, e.catalog,
		recommend.WithThreshold(e.fuzzyThreshold),
		recommend.WithSearchLimit(e.catalogLimit),
		recommend.WithLogger(e.log))

	return e
}

// Search runs the full pipeline for one query. It rejects an empty or
// whitespace-only query with types.ErrEmptyQuery before any
// collaborator call; every other failure degrades to a fallback.
func (e *Engine) Search(ctx context.Context, query, userID, userContext string) (*types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, types.ErrEmptyQuery
	}

	// History reflects what the user asked, not what was inferred, so
	// the record goes in before enhancement.
	e.sessions.Append(userID, types.SearchRecord{
		Query:     query,
		Context:   userContext,
		Timestamp: e.now(),
	})

	enhanced := e.enhanceQuery(ctx, query, userContext)

	rawResults, err := e.catalog.Search(ctx, enhanced, e.catalogLimit)
	if err != nil {
		e.log.Warn().Err(err).Str("query", enhanced).
			Msg("catalog search failed, continuing with empty results")
		rawResults = nil
	}

	// Ranking compares against the query as the user wrote it, keeping
	// result order a deterministic function of (query, candidates,
	// threshold) regardless of what the enhancer produced.
	results := e.ranker.Rank(rawResults, query, e.fuzzyThreshold)

	recommendations := e.recommendations(ctx, results, query)
	personalized := e.personal.RecommendationsFor(ctx, userID)

	return &types.SearchResult{
		OriginalQuery:               query,
		EnhancedQuery:               enhanced,
		Results:                     results,
		Recommendations:             recommendations,
		PersonalizedRecommendations: personalized,
		TotalFound:                  len(results),
		SearchContext:               userContext,
	}, nil
}

// GetPart resolves a part number to its record. An unknown part number
// and an unavailable catalog both yield (nil, nil): absence, not error.
func (e *Engine) GetPart(ctx context.Context, partNumber string) (*types.Part, error) {
	if strings.TrimSpace(partNumber) == "" {
		return nil, types.ErrEmptyPartNumber
	}

	parts, err := e.catalog.Search(ctx, partNumber, 1)
	if err != nil {
		e.log.Warn().Err(err).Str("part_number", partNumber).
			Msg("part lookup failed")
		return nil, nil
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return &parts[0], nil
}

// FindSimilar returns parts similar to the referenced one, up to the
// engine's configured similar-parts limit.
func (e *Engine) FindSimilar(ctx context.Context, partNumber string) ([]types.Part, error) {
	return e.finder.FindSimilar(ctx, partNumber, e.similarLimit)
}

// FindSimilarN is FindSimilar with a caller-supplied result limit.
// Limits below 1 fall back to the configured default.
func (e *Engine) FindSimilarN(ctx context.Context, partNumber string, limit int) ([]types.Part, error) {
	if limit < 1 {
		limit = e.similarLimit
	}
	return e.finder.FindSimilar(ctx, partNumber, limit)
}

// Recommendations returns the user's personalized recommendation
// lines. A user with no history gets an empty list.
func (e *Engine) Recommendations(ctx context.Context, userID string) []string {
	return e.personal.RecommendationsFor(ctx, userID)
}

// Profile returns the user's derived affinity profile.
func (e *Engine) Profile(userID string) types.UserProfile {
	return session.DeriveProfile(e.sessions.History(userID))
}

// enhanceQuery asks the assistant for a better search term, falling
// back to the original query on any failure or empty answer.
func (e *Engine) enhanceQuery(ctx context.Context, query, userContext string) string {
	enhanced, err := e.assistant.EnhanceQuery(ctx, query, userContext)
	if err != nil {
		e.log.Warn().Err(err).Str("query", query).
			Msg("query enhancement failed, using original query")
		return query
	}
	if strings.TrimSpace(enhanced) == "" {
		return query
	}
	return enhanced
}

// recommendations asks the assistant for recommendation text, falling
// back to deterministic templates on failure or empty output.
func (e *Engine) recommendations(ctx context.Context, results []types.Part, query string) []string {
	recs, err := e.assistant.GenerateRecommendations(ctx, results, query)
	if err != nil {
		e.log.Warn().Err(err).Str("query", query).
			Msg("recommendation generation failed, using templates")
		return fallbackRecommendations(results)
	}
	if len(recs) == 0 {
		return fallbackRecommendations(results)
	}
	return recs
}

// fallbackRecommendations synthesizes up to three templated lines from
// the top-ranked result. An empty result set yields no lines.
func fallbackRecommendations(results []types.Part) []string {
	if len(results) == 0 {
		return nil
	}

	first := results[0]
	var recs []string
	if first.Manufacturer != "" {
		recs = append(recs, fmt.Sprintf("Consider other products from %s for similar quality", first.Manufacturer))
	}
	if first.Category != "" {
		recs = append(recs, fmt.Sprintf("Explore more %s for your project needs", first.Category))
	}
	recs = append(recs,
		"Check datasheets for detailed specifications and compatibility",
		"Consider bulk pricing for multiple units")

	if len(recs) > maxFallbackRecommendations {
		recs = recs[:maxFallbackRecommendations]
	}
	return recs
}
