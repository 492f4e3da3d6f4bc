// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by the engine and its components.
var (
	// ErrEmptyCorpus is returned by Fit when no book contributes any text.
	ErrEmptyCorpus = errors.New("empty corpus: no books with usable text")

	// ErrUnknownBook is returned when a book id is not part of the current
	// vector-space generation.
	ErrUnknownBook = errors.New("unknown book: not in current generation")

	// ErrInvalidInteractionType is returned when an unrecognized interaction
	// type reaches the weight table. Ingestion validates types upstream, so
	// seeing this error indicates corrupted data.
	ErrInvalidInteractionType = errors.New("invalid interaction type")

	// ErrNotFitted is returned by read operations before the first
	// successful Fit.
	ErrNotFitted = errors.New("recommendation model not fitted")

	// ErrFitInProgress is returned when Fit is called while another fit is
	// still running.
	ErrFitInProgress = errors.New("refresh already in progress")
)

// Book is the engine's read-only view of a catalog listing. The id doubles
// as the vector-space index, so it must be stable across a fit generation.
type Book struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition,omitempty"`
	Description string    `json:"description,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

// InteractionType classifies user-book interactions for implicit feedback.
type InteractionType string

const (
	// InteractionView indicates the user opened a book's listing.
	InteractionView InteractionType = "view"
	// InteractionLike indicates the user liked a book.
	InteractionLike InteractionType = "like"
	// InteractionRequest indicates the user requested an exchange.
	InteractionRequest InteractionType = "request"
	// InteractionSearch indicates the book surfaced in a search the user ran.
	InteractionSearch InteractionType = "search"
)

// interactionWeights encodes the fixed signal strength per interaction type:
// explicit actions beyond passive viewing carry a stronger signal.
var interactionWeights = map[InteractionType]float64{
	InteractionView:    1.0,
	InteractionLike:    2.0,
	InteractionRequest: 3.0,
	InteractionSearch:  0.5,
}

// Weight returns the profile-building weight for this interaction type.
// Unknown types are rejected rather than silently mis-weighted.
func (t InteractionType) Weight() (float64, error) {
	w, ok := interactionWeights[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInteractionType, string(t))
	}
	return w, nil
}

// Valid reports whether t is a recognized interaction type.
func (t InteractionType) Valid() bool {
	_, ok := interactionWeights[t]
	return ok
}

// Interaction is one append-only entry of the interaction log. The engine
// only ever reads these.
type Interaction struct {
	UserID    int             `json:"user_id"`
	BookID    int             `json:"book_id"`
	Type      InteractionType `json:"interaction_type"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserProfile aggregates a user's weighted interaction history. It is built
// fresh per request against one vector-space generation and discarded after
// use.
type UserProfile struct {
	// CategoryWeights maps category to preference mass, normalized to sum
	// to 1. Empty when the user has no usable interactions.
	CategoryWeights map[string]float64

	// AuthorWeights maps author to preference mass, normalized to sum to 1.
	AuthorWeights map[string]float64

	// ContentVector is the L2-normalized weighted centroid of interacted
	// books' vectors, or nil when no interacted book was vectorizable.
	ContentVector Vector

	// InteractionCount is the number of interactions considered, including
	// skipped stale references.
	InteractionCount int
}

// IsEmpty reports whether the profile carries no personalization signal.
func (p *UserProfile) IsEmpty() bool {
	return len(p.CategoryWeights) == 0 && len(p.AuthorWeights) == 0 && len(p.ContentVector) == 0
}

// ScoreBreakdown records the per-component contributions behind a
// recommendation, so the blend is reviewable instead of being buried in the
// final number.
type ScoreBreakdown struct {
	CategoryScore float64 `json:"category_score"`
	AuthorScore   float64 `json:"author_score"`
	ContentScore  float64 `json:"content_score"`
	Relevance     float64 `json:"relevance"`
}

// Recommendation is one ranked result with its explanation.
type Recommendation struct {
	Book           Book           `json:"book"`
	RelevanceScore float64        `json:"relevance_score"`
	Reason         string         `json:"reason"`
	Scores         ScoreBreakdown `json:"scores"`
}

// SimilarBook is one entry of a "books similar to X" result.
type SimilarBook struct {
	Book            Book    `json:"book"`
	SimilarityScore float64 `json:"similarity_score"`
}

// BookScore pairs a book id with a similarity score.
type BookScore struct {
	BookID int     `json:"book_id"`
	Score  float64 `json:"score"`
}

// CategoryCount is one entry of a user's top-category breakdown.
type CategoryCount struct {
	Category         string `json:"category"`
	InteractionCount int    `json:"interaction_count"`
}

// UserStats is a reporting view over a user's slice of the interaction log.
type UserStats struct {
	TotalInteractions    int                     `json:"total_interactions"`
	InteractionBreakdown map[InteractionType]int `json:"interaction_breakdown"`
	TopCategories        []CategoryCount         `json:"top_categories"`
	HasSufficientData    bool                    `json:"has_sufficient_data"`
}

// Status describes the engine's current generation, for health reporting.
type Status struct {
	Fitted         bool      `json:"fitted"`
	Version        int       `json:"version"`
	FittedAt       time.Time `json:"fitted_at,omitempty"`
	BookCount      int       `json:"book_count"`
	VocabularySize int       `json:"vocabulary_size"`
}
