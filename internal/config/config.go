// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

// Package config defines and loads the application configuration.
//
// Configuration is layered with a clear precedence: environment variables
// override the optional YAML config file, which overrides built-in
// defaults. See LoadWithKoanf for the loading entry point.
package config

import (
	"fmt"
	"time"

	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/logging"
	"github.com/guruvardhan-tech-village/web-OnlineBookExchange/internal/recommend"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `json:"server" koanf:"server"`
	Database  DatabaseConfig  `json:"database" koanf:"database"`
	Security  SecurityConfig  `json:"security" koanf:"security"`
	Logging   logging.Config  `json:"logging" koanf:"logging"`
	Recommend RecommendConfig `json:"recommend" koanf:"recommend"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0.
	Host string `json:"host" koanf:"host"`

	// Port is the listen port. Default: 8080.
	Port int `json:"port" koanf:"port"`

	// ReadTimeout bounds the time to read a full request.
	ReadTimeout time.Duration `json:"read_timeout" koanf:"read_timeout"`

	// WriteTimeout bounds the time to write a full response.
	WriteTimeout time.Duration `json:"write_timeout" koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown on termination.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	// DSN is the PostgreSQL connection string.
	DSN string `json:"dsn" koanf:"dsn"`

	// MaxOpenConns caps open connections in the pool.
	MaxOpenConns int `json:"max_open_conns" koanf:"max_open_conns"`

	// MaxIdleConns caps idle connections kept in the pool.
	MaxIdleConns int `json:"max_idle_conns" koanf:"max_idle_conns"`

	// ConnMaxLifetime bounds how long a connection may be reused.
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" koanf:"conn_max_lifetime"`

	// AutoMigrate runs schema migration on startup.
	AutoMigrate bool `json:"auto_migrate" koanf:"auto_migrate"`
}

// SecurityConfig configures authentication and request limiting.
type SecurityConfig struct {
	// JWTSecret signs and verifies access tokens. Required.
	JWTSecret string `json:"-" koanf:"jwt_secret"`

	// TokenTTL is the access token lifetime.
	TokenTTL time.Duration `json:"token_ttl" koanf:"token_ttl"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `json:"cors_origins" koanf:"cors_origins"`

	// RateLimitReqs is the per-client request budget per window.
	RateLimitReqs int `json:"rate_limit_reqs" koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limiting window.
	RateLimitWindow time.Duration `json:"rate_limit_window" koanf:"rate_limit_window"`

	// RateLimitDisabled turns off HTTP rate limiting entirely.
	RateLimitDisabled bool `json:"rate_limit_disabled" koanf:"rate_limit_disabled"`
}

// RecommendConfig configures the recommendation engine and its refresh
// scheduling.
type RecommendConfig struct {
	// MaxFeatures caps the vectorizer vocabulary.
	MaxFeatures int `json:"max_features" koanf:"max_features"`

	// DefaultLimit is the result count when the caller omits one.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit caps the per-request result count.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// Blend weighs the category, author, and content score components.
	Blend recommend.BlendWeights `json:"blend" koanf:"blend"`

	// RefreshInterval is the period between automatic model refits.
	// Zero disables periodic refits.
	RefreshInterval time.Duration `json:"refresh_interval" koanf:"refresh_interval"`

	// RefreshOnStartup fits the model once when the service starts.
	RefreshOnStartup bool `json:"refresh_on_startup" koanf:"refresh_on_startup"`

	// RefreshPerMinute limits manual refresh requests through the API.
	RefreshPerMinute float64 `json:"refresh_per_minute" koanf:"refresh_per_minute"`
}

// EngineConfig converts the section into the engine's own configuration.
func (c RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		MaxFeatures:  c.MaxFeatures,
		DefaultLimit: c.DefaultLimit,
		Blend:        c.Blend,
	}
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             "",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			AutoMigrate:     true,
		},
		Security: SecurityConfig{
			JWTSecret:       "",
			TokenTTL:        24 * time.Hour,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: logging.DefaultConfig(),
		Recommend: RecommendConfig{
			MaxFeatures:      recommend.DefaultMaxFeatures,
			DefaultLimit:     10,
			MaxLimit:         50,
			Blend:            recommend.DefaultBlendWeights(),
			RefreshInterval:  time.Hour,
			RefreshOnStartup: true,
			RefreshPerMinute: 2,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be within 1-65535, got %d", c.Server.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive")
	}
	if c.Recommend.MaxLimit <= 0 {
		return fmt.Errorf("recommend.max_limit must be positive")
	}
	if c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("recommend.default_limit %d exceeds recommend.max_limit %d",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}
	if c.Recommend.RefreshPerMinute < 0 {
		return fmt.Errorf("recommend.refresh_per_minute must be non-negative")
	}
	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
