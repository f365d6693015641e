package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/partscout/partscout/pkg/types"
)

// anonymousUser is the user ID applied when a request names none.
const anonymousUser = "anonymous"

// Handler serves the partscout HTTP API.
type Handler struct {
	svc Service
	log zerolog.Logger
}

// NewHandler creates an API handler over the given service.
func NewHandler(svc Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Router assembles the chi router with middleware and all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(h.log))

	r.Get("/healthz", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", h.handleSearch)
		r.Get("/parts/{partNumber}", h.handleGetPart)
		r.Get("/parts/{partNumber}/similar", h.handleFindSimilar)
		r.Get("/users/{userID}/recommendations", h.handleRecommendations)
	})

	return r
}

type searchRequest struct {
	Query   string `json:"query"`
	Context string `json:"context"`
	UserID  string `json:"user_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = anonymousUser
	}

	result, err := h.svc.Search(r.Context(), strings.TrimSpace(req.Query), userID, req.Context)
	if err != nil {
		if errors.Is(err, types.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "search query is required")
			return
		}
		h.log.Error().Err(err).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetPart(w http.ResponseWriter, r *http.Request) {
	partNumber := chi.URLParam(r, "partNumber")

	part, err := h.svc.GetPart(r.Context(), partNumber)
	if err != nil {
		if errors.Is(err, types.ErrEmptyPartNumber) {
			writeError(w, http.StatusBadRequest, "part number is required")
			return
		}
		h.log.Error().Err(err).Msg("part lookup failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if part == nil {
		writeError(w, http.StatusNotFound, "part not found")
		return
	}

	writeJSON(w, http.StatusOK, part)
}

func (h *Handler) handleFindSimilar(w http.ResponseWriter, r *http.Request) {
	partNumber := chi.URLParam(r, "partNumber")

	parts, err := h.svc.FindSimilar(r.Context(), partNumber)
	if err != nil {
		if errors.Is(err, types.ErrEmptyPartNumber) {
			writeError(w, http.StatusBadRequest, "part number is required")
			return
		}
		h.log.Error().Err(err).Msg("similar parts lookup failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if parts == nil {
		parts = []types.Part{}
	}

	writeJSON(w, http.StatusOK, parts)
}

func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		userID = anonymousUser
	}

	recs := h.svc.Recommendations(r.Context(), userID)
	if recs == nil {
		recs = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"recommendations": recs})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
