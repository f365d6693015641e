package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partscout/partscout/pkg/types"
)

// stubService implements Service for handler tests
type stubService struct {
	searchFunc    func(ctx context.Context, query, userID, userContext string) (*types.SearchResult, error)
	getPartFunc   func(ctx context.Context, partNumber string) (*types.Part, error)
	similarFunc   func(ctx context.Context, partNumber string) ([]types.Part, error)
	recs []string
}

func (s *stubService) Search(ctx context.Context, query, userID, userContext string) (*types.SearchResult, error) {
	if s.searchFunc != nil {
		return s.searchFunc(ctx, query, userID, userContext)
	}
	return &types.SearchResult{OriginalQuery: query}, nil
}

func (s *stubService) GetPart(ctx context.Context, partNumber string) (*types.Part, error) {
	if s.getPartFunc != nil {
		return s.getPartFunc(ctx, partNumber)
	}
	return nil, nil
}

func (s *stubService) FindSimilar(ctx context.Context, partNumber string) ([]types.Part, error) {
	if s.similarFunc != nil {
		return s.similarFunc(ctx, partNumber)
	}
	return nil, nil
}

func (s *stubService) Recommendations(ctx context.Context, userID string) []string {
	return s.recs
}

func serve(t *testing.T, svc Service, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.Router().ServeHTTP(rr, req)
	return rr
}

func TestHandleSearch(t *testing.T) {
	t.Run("valid request returns the result", func(t *testing.T) {
		svc := &stubService{
			searchFunc: func(ctx context.Context, query, userID, userContext string) (*types.SearchResult, error) {
				assert.Equal(t, "10k resistor", query)
				assert.Equal(t, "alice", userID)
				assert.Equal(t, "led driver", userContext)
				return &types.SearchResult{
					OriginalQuery: query,
					TotalFound:    1,
					Results:       []types.Part{{PartNumber: "CF14JT10K0"}},
				}, nil
			},
		}

		rr := serve(t, svc, http.MethodPost, "/api/v1/search",
			`{"query":"10k resistor","context":"led driver","user_id":"alice"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		var result types.SearchResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, 1, result.TotalFound)
		assert.Equal(t, "10k resistor", result.OriginalQuery)
	})

	t.Run("missing user id defaults to anonymous", func(t *testing.T) {
		var seenUser string
		svc := &stubService{
			searchFunc: func(ctx context.Context, query, userID, userContext string) (*types.SearchResult, error) {
				seenUser = userID
				return &types.SearchResult{}, nil
			},
		}

		rr := serve(t, svc, http.MethodPost, "/api/v1/search", `{"query":"resistor"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, anonymousUser, seenUser)
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		rr := serve(t, &stubService{}, http.MethodPost, "/api/v1/search", `{"query":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("empty query is a 400", func(t *testing.T) {
		svc := &stubService{
			searchFunc: func(ctx context.Context, query, userID, userContext string) (*types.SearchResult, error) {
				return nil, types.ErrEmptyQuery
			},
		}

		rr := serve(t, svc, http.MethodPost, "/api/v1/search", `{"query":"   "}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "query")
	})

	t.Run("unexpected service failure is a 500", func(t *testing.T) {
		svc := &stubService{
			searchFunc: func(ctx context.Context, query, userID, userContext string) (*types.SearchResult, error) {
				return nil, errors.New("boom")
			},
		}

		rr := serve(t, svc, http.MethodPost, "/api/v1/search", `{"query":"resistor"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHandleGetPart(t *testing.T) {
	t.Run("known part", func(t *testing.T) {
		svc := &stubService{
			getPartFunc: func(ctx context.Context, partNumber string) (*types.Part, error) {
				assert.Equal(t, "LM358N", partNumber)
				return &types.Part{PartNumber: "LM358N"}, nil
			},
		}

		rr := serve(t, svc, http.MethodGet, "/api/v1/parts/LM358N", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var part types.Part
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &part))
		assert.Equal(t, "LM358N", part.PartNumber)
	})

	t.Run("unknown part is a 404", func(t *testing.T) {
		rr := serve(t, &stubService{}, http.MethodGet, "/api/v1/parts/NOPE", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandleFindSimilar(t *testing.T) {
	t.Run("similar parts are returned", func(t *testing.T) {
		svc := &stubService{
			similarFunc: func(ctx context.Context, partNumber string) ([]types.Part, error) {
				return []types.Part{{PartNumber: "LM324N"}}, nil
			},
		}

		rr := serve(t, svc, http.MethodGet, "/api/v1/parts/LM358N/similar", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var parts []types.Part
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &parts))
		require.Len(t, parts, 1)
		assert.Equal(t, "LM324N", parts[0].PartNumber)
	})

	t.Run("no matches is an empty array, not null", func(t *testing.T) {
		rr := serve(t, &stubService{}, http.MethodGet, "/api/v1/parts/LM358N/similar", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
	})
}

func TestHandleRecommendations(t *testing.T) {
	t.Run("lines are returned", func(t *testing.T) {
		svc := &stubService{recs: []string{"Popular in Resistors: CF14JT10K0 - 10k Ohm Resistor"}}

		rr := serve(t, svc, http.MethodGet, "/api/v1/users/alice/recommendations", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string][]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp["recommendations"], 1)
	})

	t.Run("no history is an empty array", func(t *testing.T) {
		rr := serve(t, &stubService{}, http.MethodGet, "/api/v1/users/bob/recommendations", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string][]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		recs, ok := resp["recommendations"]
		require.True(t, ok)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	})
}

func TestHealthz(t *testing.T) {
	rr := serve(t, &stubService{}, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("assigns an id", func(t *testing.T) {
		rr := serve(t, &stubService{}, http.MethodGet, "/healthz", "")
		assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
	})

	t.Run("honors the client's id", func(t *testing.T) {
		h := NewHandler(&stubService{}, zerolog.Nop())
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, "client-id-1")

		rr := httptest.NewRecorder()
		h.Router().ServeHTTP(rr, req)
		assert.Equal(t, "client-id-1", rr.Header().Get(RequestIDHeader))
	})
}
