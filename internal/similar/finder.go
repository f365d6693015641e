// Package similar discovers parts related to a reference part by
// manufacturer, category and description similarity.
package similar

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/partscout/partscout/internal/catalog"
	"github.com/partscout/partscout/internal/ranker"
	"github.com/partscout/partscout/pkg/types"
)

const (
	// DefaultLimit is the result count when the caller passes none.
	DefaultLimit = 5

	// DefaultSimilarityThreshold is the minimum full-ratio description
	// similarity a candidate must exceed, strictly.
	DefaultSimilarityThreshold = 60
)

// Finder resolves a reference part and searches the catalog for
// neighbors with similar descriptions.
type Finder struct {
	catalog   catalog.Provider
	threshold int
	log       zerolog.Logger
}

// Option customizes a Finder.
type Option func(*Finder)

// WithThreshold overrides the description similarity threshold.
func WithThreshold(threshold int) Option {
	return func(f *Finder) { f.threshold = threshold }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(f *Finder) { f.log = log }
}

// New creates a Finder over the given catalog provider.
func New(provider catalog.Provider, opts ...Option) *Finder {
	f := &Finder{
		catalog:   provider,
		threshold: DefaultSimilarityThreshold,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindSimilar returns up to limit parts similar to the referenced one,
// ordered by descending description similarity with ties keeping
// catalog order. An unresolvable reference yields an empty result, not
// an error, and catalog failures degrade the same way.
func (f *Finder) FindSimilar(ctx context.Context, partNumber string, limit int) ([]types.Part, error) {
	if strings.TrimSpace(partNumber) == "" {
		return nil, types.ErrEmptyPartNumber
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	ref, err := f.resolve(ctx, partNumber)
	if err != nil {
		f.log.Warn().Err(err).Str("part_number", partNumber).
			Msg("reference lookup failed")
		return nil, nil
	}
	if ref == nil {
		return nil, nil
	}

	// Neighbors share the reference's manufacturer and category.
	candidates, err := f.catalog.Search(ctx, ref.Manufacturer+" "+ref.Category, 2*limit)
	if err != nil {
		f.log.Warn().Err(err).Str("part_number", partNumber).
			Msg("similar parts search failed")
		return nil, nil
	}

	type scored struct {
		part  types.Part
		score int
	}
	matches := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.PartNumber == ref.PartNumber {
			continue
		}
		score := ranker.DescriptionSimilarity(ref.Description, c.Description)
		if score <= f.threshold {
			continue
		}
		matches = append(matches, scored{part: c, score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]types.Part, len(matches))
	for i, m := range matches {
		results[i] = m.part
	}
	return results, nil
}

// resolve looks the reference part up with a single-result search.
func (f *Finder) resolve(ctx context.Context, partNumber string) (*types.Part, error) {
	parts, err := f.catalog.Search(ctx, partNumber, 1)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return &parts[0], nil
}
