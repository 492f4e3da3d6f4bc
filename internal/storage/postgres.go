// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

// Package storage implements the PostgreSQL persistence layer. It backs
// both the catalog and the interaction log, and satisfies the
// recommendation engine's DataProvider interface.
package storage

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/config"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/models"
)

// Store wraps the database handle and exposes the catalog and interaction
// log operations.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Open connects to PostgreSQL, configures the connection pool, and
// optionally migrates the schema.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	store := &Store{
		db:     db,
		logger: logger.With().Str("component", "storage").Logger(),
	}

	if cfg.AutoMigrate {
		if err := store.Migrate(); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// NewWithDB wraps an existing database handle. Used by tests.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWithDB(db *gorm.DB, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "storage").Logger(),
	}
}

// Migrate creates or updates the schema for all persistent entities.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&models.User{}, &models.Book{}, &models.Interaction{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	s.logger.Info().Msg("schema migrated")
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("access connection pool: %w", err)
	}
	return sqlDB.Close()
}

// Ping verifies database connectivity, for health checks.
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("access connection pool: %w", err)
	}
	return sqlDB.Ping()
}
