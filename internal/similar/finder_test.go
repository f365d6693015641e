package similar

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partscout/partscout/pkg/types"
)

// mockCatalog implements catalog.Provider for testing
type mockCatalog struct {
	searchFunc func(ctx context.Context, term string, limit int) ([]types.Part, error)
	calls      []string
}

func (m *mockCatalog) Search(ctx context.Context, term string, limit int) ([]types.Part, error) {
	m.calls = append(m.calls, term)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, term, limit)
	}
	return nil, nil
}

func (m *mockCatalog) Provider() string { return "mock" }
func (m *mockCatalog) Close() error     { return nil }

func opAmp(pn, desc string) types.Part {
	return types.Part{
		PartNumber:   pn,
		Manufacturer: "Texas Instruments",
		Description:  desc,
		Category:     "Integrated Circuits",
	}
}

func TestFindSimilar(t *testing.T) {
	ctx := context.Background()

	t.Run("empty part number is rejected", func(t *testing.T) {
		f := New(&mockCatalog{})

		_, err := f.FindSimilar(ctx, "", 5)
		assert.ErrorIs(t, err, types.ErrEmptyPartNumber)

		_, err = f.FindSimilar(ctx, "   ", 5)
		assert.ErrorIs(t, err, types.ErrEmptyPartNumber)
	})

	t.Run("unresolvable reference yields empty result", func(t *testing.T) {
		cat := &mockCatalog{
			searchFunc: func(ctx context.Context, term string, limit int) ([]types.Part, error) {
				return nil, nil
			},
		}
		f := New(cat)

		parts, err := f.FindSimilar(ctx, "UNKNOWN-1", 5)
		require.NoError(t, err)
		assert.Empty(t, parts)
	})

	t.Run("catalog failure on lookup degrades to empty result", func(t *testing.T) {
		cat := &mockCatalog{
			searchFunc: func(ctx context.Context, term string, limit int) ([]types.Part, error) {
				return nil, errors.New("catalog down")
			},
		}
		f := New(cat)

		parts, err := f.FindSimilar(ctx, "LM358", 5)
		require.NoError(t, err)
		assert.Empty(t, parts)
	})

	t.Run("reference part is excluded from its own results", func(t *testing.T) {
		ref := opAmp("LM358", "Dual operational amplifier")
		cat := &mockCatalog{
			searchFunc: func(ctx context.Context, term string, limit int) ([]types.Part, error) {
				if term == "LM358" {
					return []types.Part{ref}, nil
				}
				return []types.Part{
					ref,
					opAmp("LM324", "Quad operational amplifier"),
				}, nil
			},
		}
		f := New(cat)

		parts, err := f.FindSimilar(ctx, "LM358", 5)
		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.Equal(t, "LM324", parts[0].PartNumber)
	})

	t.Run("candidates come from a manufacturer and category search", func(t *testing.T) {
		ref := opAmp("LM358", "Dual operational amplifier")
		cat := &mockCatalog{
			searchFunc: func(ctx context.Context, term string, limit int) ([]types.Part, error) {
				if term == "LM358" {
					return []types.Part{ref}, nil
				}
				return nil, nil
			},
		}
		f := New(cat)

		_, err := f.FindSimilar(ctx, "LM358", 5)
		require.NoError(t, err)
		require.Len(t, cat.calls, 2)
		assert.Equal(t, "LM358", cat.calls[0])
		assert.Equal(t, "Texas Instruments Integrated Circuits", cat.calls[1])
	})

	t.Run("dissimilar descriptions are filtered out", func(t *testing.T) {
		ref := opAmp("LM358", "Dual operational amplifier")
		cat := &mockCatalog{
			searchFunc: func(ctx context.Context, term string, limit int) ([]types.Part, error) {
				if term == "LM358" {
					return []types.Part{ref}, nil
				}
				return []types.Part{
					opAmp("LM324", "Quad operational amplifier"),
					opAmp("SN74HC595", "8-bit shift register qqzzxx"),
				}, nil
			},
		}
		f := New(cat)

		parts, err := f.FindSimilar(ctx, "LM358", 5)
		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.Equal(t, "LM324", parts[0].PartNumber)
	})

	t.Run("similarity equal to the threshold is excluded", func(t *testing.T) {
		ref := opAmp("LM358", "Dual operational amplifier")
		twin := opAmp("LM358A", "Dual operational amplifier")
		cat := &mockCatalog{
			searchFunc: func(ctx context.Context, term string, limit int) ([]types.Part, error) {
				if term == "LM358" {
					return []types.Part{ref}, nil
				}
				return []types.Part{twin}, nil
			},
		}
		// Identical descriptions score exactly 100; the comparison is
		// strict, so a threshold of 100 excludes even a perfect match.
		f := New(cat, WithThreshold(100))

		parts, err := f.FindSimilar(ctx, "LM358", 5)
		require.NoError(t, err)
		assert.Empty(t, parts)
	})

	t.Run("results are truncated to the limit", func(t *testing.T) {
		ref := opAmp("LM358", "Dual operational amplifier")
		cat := &mockCatalog{
			searchFunc: func(ctx context.Context, term string, limit int) ([]types.Part, error) {
				if term == "LM358" {
					return []types.Part{ref}, nil
				}
				return []types.Part{
					opAmp("LM358A", "Dual operational amplifier"),
					opAmp("LM358B", "Dual operational amplifier"),
					opAmp("LM358D", "Dual operational amplifier"),
				}, nil
			},
		}
		f := New(cat)

		parts, err := f.FindSimilar(ctx, "LM358", 2)
		require.NoError(t, err)
		assert.Len(t, parts, 2)
	})

	t.Run("zero limit falls back to the default", func(t *testing.T) {
		ref := opAmp("LM358", "Dual operational amplifier")
		var candidateLimit int
		cat := &mockCatalog{
			searchFunc: func(ctx context.Context, term string, limit int) ([]types.Part, error) {
				if term == "LM358" {
					return []types.Part{ref}, nil
				}
				candidateLimit = limit
				return nil, nil
			},
		}
		f := New(cat)

		_, err := f.FindSimilar(ctx, "LM358", 0)
		require.NoError(t, err)
		assert.Equal(t, 2*DefaultLimit, candidateLimit)
	})
}
