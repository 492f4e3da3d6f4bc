// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/config"
)

// NewRouter assembles the HTTP routing tree: global middleware, the
// public health and metrics endpoints, and the authenticated API routes.
func NewRouter(cfg *config.Config, handler *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !cfg.Security.RateLimitDisabled {
		r.Use(httprate.LimitByIP(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow))
	}

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Security.JWTSecret))

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", handler.GetRecommendations)
			r.Get("/similar/{bookID}", handler.GetSimilarBooks)
			r.Post("/refresh", handler.RefreshModel)
			r.Get("/stats", handler.GetStats)
		})

		r.Post("/interactions", handler.RecordInteraction)
	})

	return r
}
