// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import "fmt"

// BlendWeights defines the relative contribution of each scoring component
// to the final relevance score. Weights are normalized at runtime so the
// blended score stays in [0, 1].
type BlendWeights struct {
	// Category is the weight of the category-preference score.
	Category float64 `json:"category" koanf:"category"`

	// Author is the weight of the author-preference score.
	Author float64 `json:"author" koanf:"author"`

	// Content is the weight of the content-similarity score.
	Content float64 `json:"content" koanf:"content"`
}

// DefaultBlendWeights returns the documented default blend.
func DefaultBlendWeights() BlendWeights {
	return BlendWeights{Category: 0.4, Author: 0.3, Content: 0.3}
}

// Normalize returns a copy with weights scaled to sum to 1.0. All-zero
// weights fall back to the defaults.
func (w BlendWeights) Normalize() BlendWeights {
	sum := w.Category + w.Author + w.Content
	if sum == 0 {
		return DefaultBlendWeights()
	}
	return BlendWeights{
		Category: w.Category / sum,
		Author:   w.Author / sum,
		Content:  w.Content / sum,
	}
}

// Validate checks that no weight is negative.
func (w BlendWeights) Validate() error {
	if w.Category < 0 || w.Author < 0 || w.Content < 0 {
		return fmt.Errorf("blend weights must be non-negative: %+v", w)
	}
	return nil
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MaxFeatures caps the vectorizer vocabulary. Default: 5000.
	MaxFeatures int `json:"max_features" koanf:"max_features"`

	// DefaultLimit is the number of recommendations returned when the
	// caller does not specify one. Default: 10.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// Blend weighs the category, author, and content components.
	Blend BlendWeights `json:"blend" koanf:"blend"`
}

// DefaultConfig returns a production-ready default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxFeatures:  DefaultMaxFeatures,
		DefaultLimit: 10,
		Blend:        DefaultBlendWeights(),
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.MaxFeatures <= 0 {
		return fmt.Errorf("max_features must be positive, got %d", c.MaxFeatures)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	return c.Blend.Validate()
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
