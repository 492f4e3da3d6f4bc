// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func catalogByID(books []Book) map[int]Book {
	byID := make(map[int]Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return byID
}

func TestInteractionTypeWeight(t *testing.T) {
	tests := []struct {
		typ     InteractionType
		want    float64
		wantErr bool
	}{
		{typ: InteractionView, want: 1.0},
		{typ: InteractionLike, want: 2.0},
		{typ: InteractionRequest, want: 3.0},
		{typ: InteractionSearch, want: 0.5},
		{typ: InteractionType("purchase"), wantErr: true},
		{typ: InteractionType(""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got, err := tt.typ.Weight()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInteractionType) {
					t.Fatalf("Weight() error = %v, want %v", err, ErrInvalidInteractionType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Weight() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Weight() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestBuildProfile(t *testing.T) {
	books := testCatalog()
	byID := catalogByID(books)
	vs := fitTestSpace(t, books)
	logger := zerolog.Nop()

	t.Run("no interactions yields empty profile", func(t *testing.T) {
		profile, err := BuildProfile(nil, byID, vs, logger)
		if err != nil {
			t.Fatalf("BuildProfile() error = %v", err)
		}
		if !profile.IsEmpty() {
			t.Errorf("profile not empty: %+v", profile)
		}
	})

	t.Run("weights accumulate and normalize to 1", func(t *testing.T) {
		interactions := []Interaction{
			{UserID: 1, BookID: 1, Type: InteractionLike},    // 2.0 Science Fiction
			{UserID: 1, BookID: 2, Type: InteractionView},    // 1.0 Science Fiction
			{UserID: 1, BookID: 3, Type: InteractionRequest}, // 3.0 Cooking
		}
		profile, err := BuildProfile(interactions, byID, vs, logger)
		if err != nil {
			t.Fatalf("BuildProfile() error = %v", err)
		}

		wantCategories := map[string]float64{"Science Fiction": 0.5, "Cooking": 0.5}
		for cat, want := range wantCategories {
			if got := profile.CategoryWeights[cat]; math.Abs(got-want) > epsilon {
				t.Errorf("CategoryWeights[%q] = %f, want %f", cat, got, want)
			}
		}

		var catSum, authSum float64
		for _, w := range profile.CategoryWeights {
			catSum += w
		}
		for _, w := range profile.AuthorWeights {
			authSum += w
		}
		if math.Abs(catSum-1.0) > epsilon {
			t.Errorf("category weights sum = %f, want 1.0", catSum)
		}
		if math.Abs(authSum-1.0) > epsilon {
			t.Errorf("author weights sum = %f, want 1.0", authSum)
		}

		// Frank Herbert got 2.0 + 1.0 of 6.0 total signal.
		if got := profile.AuthorWeights["Frank Herbert"]; math.Abs(got-0.5) > epsilon {
			t.Errorf("AuthorWeights[Frank Herbert] = %f, want 0.5", got)
		}
	})

	t.Run("content vector is unit length", func(t *testing.T) {
		interactions := []Interaction{
			{UserID: 1, BookID: 1, Type: InteractionLike},
			{UserID: 1, BookID: 3, Type: InteractionView},
		}
		profile, err := BuildProfile(interactions, byID, vs, logger)
		if err != nil {
			t.Fatalf("BuildProfile() error = %v", err)
		}
		if norm := profile.ContentVector.Norm(); math.Abs(norm-1.0) > epsilon {
			t.Errorf("content vector norm = %f, want 1.0", norm)
		}
	})

	t.Run("stale book reference skipped silently", func(t *testing.T) {
		interactions := []Interaction{
			{UserID: 1, BookID: 999, Type: InteractionLike}, // deleted book
			{UserID: 1, BookID: 1, Type: InteractionView},
		}
		profile, err := BuildProfile(interactions, byID, vs, logger)
		if err != nil {
			t.Fatalf("BuildProfile() error = %v", err)
		}
		if got := profile.CategoryWeights["Science Fiction"]; math.Abs(got-1.0) > epsilon {
			t.Errorf("CategoryWeights[Science Fiction] = %f, want 1.0", got)
		}
		if profile.InteractionCount != 2 {
			t.Errorf("InteractionCount = %d, want 2", profile.InteractionCount)
		}
	})

	t.Run("invalid interaction type rejected", func(t *testing.T) {
		interactions := []Interaction{
			{UserID: 1, BookID: 1, Type: InteractionType("borrow")},
		}
		if _, err := BuildProfile(interactions, byID, vs, logger); !errors.Is(err, ErrInvalidInteractionType) {
			t.Errorf("BuildProfile() error = %v, want %v", err, ErrInvalidInteractionType)
		}
	})

	t.Run("nil vector space still builds preference maps", func(t *testing.T) {
		interactions := []Interaction{
			{UserID: 1, BookID: 1, Type: InteractionLike},
		}
		profile, err := BuildProfile(interactions, byID, nil, logger)
		if err != nil {
			t.Fatalf("BuildProfile() error = %v", err)
		}
		if len(profile.ContentVector) != 0 {
			t.Errorf("content vector = %v, want empty", profile.ContentVector)
		}
		if got := profile.CategoryWeights["Science Fiction"]; math.Abs(got-1.0) > epsilon {
			t.Errorf("CategoryWeights[Science Fiction] = %f, want 1.0", got)
		}
	})
}

func TestBuildProfile_DeterministicAcrossGenerations(t *testing.T) {
	books := testCatalog()
	byID := catalogByID(books)
	logger := zerolog.Nop()
	interactions := []Interaction{
		{UserID: 1, BookID: 1, Type: InteractionLike},
		{UserID: 1, BookID: 2, Type: InteractionRequest},
	}

	vsA := fitTestSpace(t, books)
	vsB := fitTestSpace(t, books)

	a, err := BuildProfile(interactions, byID, vsA, logger)
	if err != nil {
		t.Fatalf("BuildProfile() error = %v", err)
	}
	b, err := BuildProfile(interactions, byID, vsB, logger)
	if err != nil {
		t.Fatalf("BuildProfile() error = %v", err)
	}
	if !reflect.DeepEqual(a.CategoryWeights, b.CategoryWeights) {
		t.Errorf("category weights differ across identical fits")
	}
	for idx, w := range a.ContentVector {
		if math.Abs(w-b.ContentVector[idx]) > epsilon {
			t.Errorf("content vector term %d differs: %f vs %f", idx, w, b.ContentVector[idx])
		}
	}
}

func TestBuildStats(t *testing.T) {
	books := testCatalog()
	byID := catalogByID(books)

	tests := []struct {
		name         string
		interactions []Interaction
		wantTotal    int
		wantTop      []CategoryCount
		wantEnough   bool
	}{
		{
			name:      "no interactions",
			wantTotal: 0,
			wantTop:   []CategoryCount{},
		},
		{
			name: "breakdown and top categories",
			interactions: []Interaction{
				{UserID: 1, BookID: 1, Type: InteractionView},
				{UserID: 1, BookID: 2, Type: InteractionView},
				{UserID: 1, BookID: 3, Type: InteractionLike},
				{UserID: 1, BookID: 1, Type: InteractionRequest},
				{UserID: 1, BookID: 999, Type: InteractionView}, // stale, uncategorized
			},
			wantTotal: 5,
			wantTop: []CategoryCount{
				{Category: "Science Fiction", InteractionCount: 3},
				{Category: "Cooking", InteractionCount: 1},
			},
			wantEnough: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildStats(tt.interactions, byID)
			if got.TotalInteractions != tt.wantTotal {
				t.Errorf("TotalInteractions = %d, want %d", got.TotalInteractions, tt.wantTotal)
			}
			if !reflect.DeepEqual(got.TopCategories, tt.wantTop) {
				t.Errorf("TopCategories = %v, want %v", got.TopCategories, tt.wantTop)
			}
			if got.HasSufficientData != tt.wantEnough {
				t.Errorf("HasSufficientData = %v, want %v", got.HasSufficientData, tt.wantEnough)
			}
		})
	}
}

func TestBuildStats_BreakdownCounts(t *testing.T) {
	byID := catalogByID(testCatalog())
	interactions := []Interaction{
		{UserID: 1, BookID: 1, Type: InteractionView},
		{UserID: 1, BookID: 1, Type: InteractionView},
		{UserID: 1, BookID: 2, Type: InteractionLike},
	}

	got := BuildStats(interactions, byID)
	if got.InteractionBreakdown[InteractionView] != 2 {
		t.Errorf("view count = %d, want 2", got.InteractionBreakdown[InteractionView])
	}
	if got.InteractionBreakdown[InteractionLike] != 1 {
		t.Errorf("like count = %d, want 1", got.InteractionBreakdown[InteractionLike])
	}
}
