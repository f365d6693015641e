// Package api exposes the search engine over HTTP. The layer is thin
// transport: validation beyond what the engine itself enforces, JSON
// shaping, and request logging, nothing more.
package api

import (
	"context"

	"github.com/partscout/partscout/pkg/types"
)

// Service is the engine surface the HTTP layer depends on.
type Service interface {
	Search(ctx context.Context, query, userID, userContext string) (*types.SearchResult, error)
	GetPart(ctx context.Context, partNumber string) (*types.Part, error)
	FindSimilar(ctx context.Context, partNumber string) ([]types.Part, error)
	Recommendations(ctx context.Context, userID string) []string
}
