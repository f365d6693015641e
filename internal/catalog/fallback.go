package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/partscout/partscout/pkg/types"
)

// FallbackProvider tries a primary provider and degrades to a secondary
// one when the primary fails. The secondary's error, if any, is the one
// surfaced; a primary failure alone never reaches the caller.
type FallbackProvider struct {
	primary   Provider
	secondary Provider
	log       zerolog.Logger
}

// NewFallbackProvider composes primary and secondary providers.
func NewFallbackProvider(primary, secondary Provider, log zerolog.Logger) *FallbackProvider {
	return &FallbackProvider{
		primary:   primary,
		secondary: secondary,
		log:       log,
	}
}

// Search implements Provider.
func (f *FallbackProvider) Search(ctx context.Context, term string, limit int) ([]types.Part, error) {
	parts, err := f.primary.Search(ctx, term, limit)
	if err == nil {
		return parts, nil
	}

	f.log.Warn().
		Err(err).
		Str("provider", f.primary.Provider()).
		Str("term", term).
		Msg("primary catalog failed, using fallback")

	return f.secondary.Search(ctx, term, limit)
}

// Provider implements Provider.
func (f *FallbackProvider) Provider() string {
	return f.primary.Provider() + "+" + f.secondary.Provider()
}

// Close implements Provider. Both providers are closed; the first error
// wins.
func (f *FallbackProvider) Close() error {
	err := f.primary.Close()
	if cerr := f.secondary.Close(); err == nil {
		err = cerr
	}
	return err
}
