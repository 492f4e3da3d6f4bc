// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/config"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/metrics"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/recommend"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/storage"
)

// RecommendEngine is the handler's view of the recommendation engine.
type RecommendEngine interface {
	Fit(ctx context.Context) error
	Recommend(ctx context.Context, userID, limit int) ([]recommend.Recommendation, error)
	SimilarBooks(bookID, limit int) ([]recommend.SimilarBook, error)
	Stats(ctx context.Context, userID int) (recommend.UserStats, error)
	Status() recommend.Status
}

// InteractionStore is the handler's view of the interaction log.
type InteractionStore interface {
	RecordInteraction(ctx context.Context, userID, bookID int, typ recommend.InteractionType) (bool, error)
	Ping() error
}

// Handler bundles the HTTP handlers with their dependencies.
type Handler struct {
	engine   RecommendEngine
	store    InteractionStore
	cfg      config.RecommendConfig
	logger   zerolog.Logger
	validate *validator.Validate

	// refreshLimiter throttles manual model refreshes, which are
	// expensive full refits.
	refreshLimiter *rate.Limiter
}

// NewHandler creates the API handler set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(engine RecommendEngine, store InteractionStore, cfg config.RecommendConfig, logger zerolog.Logger) *Handler {
	limit := rate.Inf
	if cfg.RefreshPerMinute > 0 {
		limit = rate.Limit(cfg.RefreshPerMinute / 60.0)
	}
	return &Handler{
		engine:         engine,
		store:          store,
		cfg:            cfg,
		logger:         logger.With().Str("component", "api").Logger(),
		validate:       validator.New(),
		refreshLimiter: rate.NewLimiter(limit, 1),
	}
}

// GetRecommendations serves GET /api/recommendations.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	limit, err := h.parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	recs, err := h.engine.Recommend(r.Context(), userID, limit)
	switch {
	case errors.Is(err, recommend.ErrNotFitted):
		rw.ServiceUnavailable("Recommendation model is not ready yet")
		return
	case err != nil:
		h.logger.Error().Err(err).Int("user_id", userID).Msg("recommendation request failed")
		rw.InternalError("Failed to generate recommendations")
		return
	}

	coldStart := len(recs) > 0 && recs[0].RelevanceScore == 0
	metrics.RecordRecommendations(len(recs), coldStart)

	rw.Success(map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// GetSimilarBooks serves GET /api/recommendations/similar/{bookID}.
func (h *Handler) GetSimilarBooks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	bookID, err := strconv.Atoi(chi.URLParam(r, "bookID"))
	if err != nil || bookID <= 0 {
		rw.BadRequest("Book id must be a positive integer")
		return
	}
	limit, err := h.parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	similar, err := h.engine.SimilarBooks(bookID, limit)
	switch {
	case errors.Is(err, recommend.ErrNotFitted):
		rw.ServiceUnavailable("Recommendation model is not ready yet")
		return
	case errors.Is(err, recommend.ErrUnknownBook):
		rw.NotFound("Book not found in the current catalog model")
		return
	case err != nil:
		h.logger.Error().Err(err).Int("book_id", bookID).Msg("similar books request failed")
		rw.InternalError("Failed to find similar books")
		return
	}

	rw.Success(map[string]interface{}{
		"book_id":       bookID,
		"similar_books": similar,
		"count":         len(similar),
	})
}

// RefreshModel serves POST /api/recommendations/refresh. Refits are
// expensive, so manual triggers are rate limited.
func (h *Handler) RefreshModel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if !h.refreshLimiter.Allow() {
		metrics.APIRateLimitHits.WithLabelValues("/api/recommendations/refresh").Inc()
		rw.TooManyRequests("Model refresh is rate limited, try again later")
		return
	}

	err := h.engine.Fit(r.Context())
	switch {
	case errors.Is(err, recommend.ErrFitInProgress):
		rw.Conflict("A model refresh is already running")
		return
	case errors.Is(err, recommend.ErrEmptyCorpus):
		rw.ServiceUnavailable("No catalog data available to fit the model")
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("model refresh failed")
		rw.InternalError("Model refresh failed")
		return
	}

	rw.Success(h.engine.Status())
}

// GetStats serves GET /api/recommendations/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	stats, err := h.engine.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Int("user_id", userID).Msg("stats request failed")
		rw.InternalError("Failed to load interaction statistics")
		return
	}
	rw.Success(stats)
}

// interactionRequest is the payload of POST /api/interactions.
type interactionRequest struct {
	BookID int    `json:"book_id" validate:"required,gt=0"`
	Type   string `json:"interaction_type" validate:"required,oneof=view like request search"`
}

// RecordInteraction serves POST /api/interactions.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		rw.ValidationError("Invalid interaction payload", err.Error())
		return
	}

	recorded, err := h.store.RecordInteraction(r.Context(), userID, req.BookID, recommend.InteractionType(req.Type))
	switch {
	case errors.Is(err, storage.ErrBookNotFound):
		rw.NotFound("Book not found")
		return
	case errors.Is(err, recommend.ErrInvalidInteractionType):
		rw.BadRequest("Unknown interaction type")
		return
	case err != nil:
		h.logger.Error().Err(err).Int("user_id", userID).Int("book_id", req.BookID).Msg("record interaction failed")
		rw.InternalError("Failed to record interaction")
		return
	}

	metrics.RecordInteraction(req.Type, recorded)
	rw.Created(map[string]interface{}{
		"recorded": recorded,
	})
}

// Health serves GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	dbStatus := "ok"
	if err := h.store.Ping(); err != nil {
		dbStatus = "unreachable"
	}

	rw.Success(map[string]interface{}{
		"status":   "ok",
		"database": dbStatus,
		"model":    h.engine.Status(),
	})
}

// parseLimit parses the optional limit query parameter, applying the
// configured default and cap.
func (h *Handler) parseLimit(raw string) (int, error) {
	if raw == "" {
		return h.cfg.DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	if limit > h.cfg.MaxLimit {
		limit = h.cfg.MaxLimit
	}
	return limit, nil
}
