// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import (
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.MaxFeatures != DefaultMaxFeatures {
		t.Errorf("MaxFeatures = %d, want %d", cfg.MaxFeatures, DefaultMaxFeatures)
	}
	if cfg.DefaultLimit != 10 {
		t.Errorf("DefaultLimit = %d, want 10", cfg.DefaultLimit)
	}
	if cfg.Blend != DefaultBlendWeights() {
		t.Errorf("Blend = %+v, want defaults", cfg.Blend)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "zero max features", mutate: func(c *Config) { c.MaxFeatures = 0 }, wantErr: true},
		{name: "negative default limit", mutate: func(c *Config) { c.DefaultLimit = -1 }, wantErr: true},
		{name: "negative blend weight", mutate: func(c *Config) { c.Blend.Author = -0.5 }, wantErr: true},
		{name: "custom blend", mutate: func(c *Config) { c.Blend = BlendWeights{Category: 2, Author: 1, Content: 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlendWeights_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   BlendWeights
		want BlendWeights
	}{
		{
			name: "already normalized",
			in:   BlendWeights{Category: 0.4, Author: 0.3, Content: 0.3},
			want: BlendWeights{Category: 0.4, Author: 0.3, Content: 0.3},
		},
		{
			name: "scaled down",
			in:   BlendWeights{Category: 4, Author: 3, Content: 3},
			want: BlendWeights{Category: 0.4, Author: 0.3, Content: 0.3},
		},
		{
			name: "all zero falls back to defaults",
			in:   BlendWeights{},
			want: DefaultBlendWeights(),
		},
		{
			name: "single component",
			in:   BlendWeights{Content: 7},
			want: BlendWeights{Content: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.Category-tt.want.Category) > epsilon ||
				math.Abs(got.Author-tt.want.Author) > epsilon ||
				math.Abs(got.Content-tt.want.Content) > epsilon {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
			sum := got.Category + got.Author + got.Content
			if math.Abs(sum-1.0) > epsilon {
				t.Errorf("normalized sum = %f, want 1.0", sum)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.MaxFeatures = 42
	clone.Blend.Category = 0.9

	if cfg.MaxFeatures == 42 {
		t.Error("Clone() shares MaxFeatures with the original")
	}
	if cfg.Blend.Category == 0.9 {
		t.Error("Clone() shares Blend with the original")
	}
}
