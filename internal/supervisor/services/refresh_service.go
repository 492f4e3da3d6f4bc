// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/metrics"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/recommend"
)

// ModelFitter is the refresh service's view of the recommendation engine.
type ModelFitter interface {
	Fit(ctx context.Context) error
	Status() recommend.Status
}

// RefreshServiceConfig holds configuration for the model refresh loop.
type RefreshServiceConfig struct {
	// RefreshOnStartup fits the model once when the service starts.
	RefreshOnStartup bool

	// RefreshInterval is the period between automatic refits. Zero or
	// negative disables the periodic loop; the service then only handles
	// the startup fit and waits for shutdown.
	RefreshInterval time.Duration

	// FitTimeout bounds a single fit. Default: 10 minutes.
	FitTimeout time.Duration
}

// RefreshService keeps the recommendation model current by refitting it
// on a schedule. A failed fit is logged and retried at the next tick; the
// engine keeps serving its previous generation in the meantime.
type RefreshService struct {
	engine ModelFitter
	config RefreshServiceConfig
	logger zerolog.Logger
}

// NewRefreshService creates the refresh loop service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(engine ModelFitter, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.FitTimeout <= 0 {
		cfg.FitTimeout = 10 * time.Minute
	}
	return &RefreshService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "model-refresh").Logger(),
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Dur("refresh_interval", s.config.RefreshInterval).
		Msg("model refresh service starting")

	if s.config.RefreshOnStartup {
		if err := s.refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup fit failed, retrying on schedule")
		}
	}

	if s.config.RefreshInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("model refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled fit failed")
			}
		}
	}
}

// refresh runs one fit with its own deadline and records the outcome.
// An already-running fit counts as success here: the model is being
// refreshed either way.
func (s *RefreshService) refresh(ctx context.Context) error {
	fitCtx, cancel := context.WithTimeout(ctx, s.config.FitTimeout)
	defer cancel()

	start := time.Now()
	err := s.engine.Fit(fitCtx)
	if errors.Is(err, recommend.ErrFitInProgress) {
		s.logger.Debug().Msg("fit already running, skipping scheduled refresh")
		return nil
	}

	status := s.engine.Status()
	metrics.RecordFit(time.Since(start), status.Version, status.VocabularySize, err)
	if err != nil {
		return err
	}

	s.logger.Info().
		Int("version", status.Version).
		Int("books", status.BookCount).
		Dur("duration", time.Since(start)).
		Msg("model refreshed")
	return nil
}

// String identifies the service in supervisor logs.
func (s *RefreshService) String() string {
	return "model-refresh"
}
