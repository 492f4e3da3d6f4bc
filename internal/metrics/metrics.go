// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

// Package metrics provides Prometheus instrumentation for the HTTP API,
// the recommendation engine, and interaction ingestion.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation engine metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation results returned",
		},
		[]string{"cold_start"},
	)

	ModelFitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_fit_duration_seconds",
			Help:    "Duration of vector space fits in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	ModelFitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fits_total",
			Help: "Total number of vector space fit attempts",
		},
		[]string{"outcome"},
	)

	ModelGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_generation",
			Help: "Version number of the currently serving fit generation",
		},
	)

	ModelVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_vocabulary_terms",
			Help: "Number of terms in the current fit vocabulary",
		},
	)

	// Interaction ingestion metrics
	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_recorded_total",
			Help: "Total number of interactions appended to the log",
		},
		[]string{"type"},
	)

	InteractionsDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interactions_deduplicated_total",
			Help: "Total number of duplicate views suppressed at ingestion",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordFit records one fit attempt and, on success, the new generation.
func RecordFit(duration time.Duration, version, vocabularySize int, err error) {
	ModelFitDuration.Observe(duration.Seconds())
	if err != nil {
		ModelFitsTotal.WithLabelValues("error").Inc()
		return
	}
	ModelFitsTotal.WithLabelValues("success").Inc()
	ModelGeneration.Set(float64(version))
	ModelVocabularySize.Set(float64(vocabularySize))
}

// RecordRecommendations records served recommendation results.
func RecordRecommendations(count int, coldStart bool) {
	RecommendationsServed.WithLabelValues(strconv.FormatBool(coldStart)).Add(float64(count))
}

// RecordInteraction records one ingested interaction, or a suppressed
// duplicate when recorded is false.
func RecordInteraction(typ string, recorded bool) {
	if !recorded {
		InteractionsDeduplicated.Inc()
		return
	}
	InteractionsRecorded.WithLabelValues(typ).Inc()
}
