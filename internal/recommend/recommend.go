// Package recommend turns per-user search history into recommendation
// lines, independent of any single search.
//
// Generating recommendations performs live catalog lookups, so callers
// must tolerate added latency. Each lookup degrades independently: a
// catalog failure skips that line and the rest still appear.
package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/partscout/partscout/internal/catalog"
	"github.com/partscout/partscout/internal/ranker"
	"github.com/partscout/partscout/internal/session"
	"github.com/partscout/partscout/pkg/types"
)

const (
	// MaxRecommendations bounds the combined recommendation list.
	MaxRecommendations = 5

	// maxCategoryLookups and maxManufacturerLookups bound how many
	// profile entries trigger a live catalog search.
	maxCategoryLookups     = 3
	maxManufacturerLookups = 2
)

// Engine derives personalized recommendations from session history.
type Engine struct {
	sessions  session.Store
	catalog   catalog.Provider
	ranker    *ranker.Ranker
	threshold int
	limit     int
	log       zerolog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithThreshold overrides the fuzzy threshold used to pick the top
// result of each affinity search.
func WithThreshold(threshold int) Option {
	return func(e *Engine) { e.threshold = threshold }
}

// WithSearchLimit overrides how many candidates each affinity search
// requests from the catalog.
func WithSearchLimit(limit int) Option {
	return func(e *Engine) { e.limit = limit }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates a personalization engine.
func New(sessions session.Store, provider catalog.Provider, opts ...Option) *Engine {
	e := &Engine{
		sessions:  sessions,
		catalog:   provider,
		ranker:    ranker.New(),
		threshold: ranker.DefaultThreshold,
		limit:     catalog.DefaultSearchLimit,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RecommendationsFor returns up to MaxRecommendations lines for a user:
// category lines first (top three favorite categories), then
// manufacturer lines (top two preferred manufacturers). A user with no
// history gets an empty result, never an error.
func (e *Engine) RecommendationsFor(ctx context.Context, userID string) []string {
	history := e.sessions.History(userID)
	if len(history) == 0 {
		return nil
	}

	profile := session.DeriveProfile(history)

	var recs []string

	categories := profile.FavoriteCategories
	if len(categories) > maxCategoryLookups {
		categories = categories[:maxCategoryLookups]
	}
	for _, category := range categories {
		if top, ok := e.topResult(ctx, category); ok {
			recs = append(recs, fmt.Sprintf("Popular in %s: %s - %s", category, top.PartNumber, top.Description))
		}
	}

	manufacturers := profile.PreferredManufacturers
	if len(manufacturers) > maxManufacturerLookups {
		manufacturers = manufacturers[:maxManufacturerLookups]
	}
	for _, manufacturer := range manufacturers {
		if top, ok := e.topResult(ctx, manufacturer); ok {
			recs = append(recs, fmt.Sprintf("From %s: %s - %s", manufacturer, top.PartNumber, top.Description))
		}
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

// topResult runs one affinity search and returns its top-ranked part.
// Failures are non-fatal: the line is skipped.
func (e *Engine) topResult(ctx context.Context, term string) (types.Part, bool) {
	parts, err := e.catalog.Search(ctx, term, e.limit)
	if err != nil {
		e.log.Warn().Err(err).Str("term", term).
			Msg("affinity search failed, skipping recommendation")
		return types.Part{}, false
	}

	ranked := e.ranker.Rank(parts, term, e.threshold)
	if len(ranked) == 0 {
		return types.Part{}, false
	}
	return ranked[0], true
}
