// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DataProvider decouples the engine from the storage layer: the catalog
// store supplies listings, the interaction log supplies per-user history.
// The engine only ever reads through this interface.
type DataProvider interface {
	// GetBooks returns all catalog listings, available or not.
	GetBooks(ctx context.Context) ([]Book, error)

	// GetUserInteractions returns the interaction log entries for one user.
	GetUserInteractions(ctx context.Context, userID int) ([]Interaction, error)
}

// generation is one consistent, immutable snapshot produced by a single
// Fit: the vector space plus the catalog metadata it was fitted on. Readers
// always see a whole generation or none.
type generation struct {
	space    *VectorSpace
	books    map[int]Book
	ordered  []Book // ascending id; the deterministic candidate order
	version  int
	fittedAt time.Time
}

// Engine serves content-based book recommendations over the current fit
// generation. It is safe for concurrent use: Fit builds a new generation in
// isolation and swaps a single pointer, so in-flight reads never observe a
// partially built vocabulary.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider DataProvider

	current atomic.Pointer[generation]
	fitMu   sync.Mutex
	version atomic.Int32
}

// NewEngine creates a recommendation engine. Recommend, SimilarBooks, and
// Similarity fail with ErrNotFitted until the first successful Fit.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider DataProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("data provider not set")
	}
	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		provider: provider,
	}, nil
}

// Fit rebuilds the vector space from the current catalog and atomically
// swaps it in as the new generation. On failure the previous generation, if
// any, is left intact and serving. Concurrent fits are rejected with
// ErrFitInProgress rather than queued.
func (e *Engine) Fit(ctx context.Context) error {
	if !e.fitMu.TryLock() {
		return ErrFitInProgress
	}
	defer e.fitMu.Unlock()

	start := time.Now()
	books, err := e.provider.GetBooks(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	space, err := FitVectorSpace(ctx, books, e.config.MaxFeatures)
	if err != nil {
		return err
	}

	byID := make(map[int]Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	ordered := make([]Book, len(books))
	copy(ordered, books)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	gen := &generation{
		space:    space,
		books:    byID,
		ordered:  ordered,
		version:  int(e.version.Add(1)),
		fittedAt: time.Now(),
	}
	e.current.Store(gen)

	e.logger.Info().
		Int("version", gen.version).
		Int("books", len(books)).
		Int("vocabulary", space.VocabularySize()).
		Dur("duration", time.Since(start)).
		Msg("vector space refitted")

	return nil
}

// Recommend returns up to limit ranked recommendations for a user. A limit
// of zero or less falls back to the configured default. A user with no
// interaction history still receives results in fallback order (ascending
// book id) with a cold-start reason, never an error, as long as eligible
// candidates exist.
func (e *Engine) Recommend(ctx context.Context, userID, limit int) ([]Recommendation, error) {
	gen := e.current.Load()
	if gen == nil {
		return nil, ErrNotFitted
	}
	if limit <= 0 {
		limit = e.config.DefaultLimit
	}

	interactions, err := e.provider.GetUserInteractions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	profile, err := BuildProfile(interactions, gen.books, gen.space, e.logger)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}

	blend := e.config.Blend.Normalize()
	recs := make([]Recommendation, 0, len(gen.ordered))
	for _, book := range gen.ordered {
		// Hard eligibility invariant: never the user's own or unavailable
		// listings.
		if !book.Available || book.OwnerID == userID {
			continue
		}
		breakdown := scoreCandidate(profile, book, gen.space, blend)
		recs = append(recs, Recommendation{
			Book:           book,
			RelevanceScore: breakdown.Relevance,
			Scores:         breakdown,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].RelevanceScore != recs[j].RelevanceScore {
			return recs[i].RelevanceScore > recs[j].RelevanceScore
		}
		return recs[i].Book.ID < recs[j].Book.ID
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}

	for i := range recs {
		recs[i].Reason = recommendationReason(recs[i].Scores, recs[i].Book, blend)
	}

	e.logger.Debug().
		Int("user_id", userID).
		Int("candidates", len(gen.ordered)).
		Int("returned", len(recs)).
		Bool("cold_start", profile.IsEmpty()).
		Msg("recommendations generated")

	return recs, nil
}

// scoreCandidate computes the per-component scores and their blend for one
// eligible candidate against the user's profile.
func scoreCandidate(profile *UserProfile, book Book, vs *VectorSpace, blend BlendWeights) ScoreBreakdown {
	breakdown := ScoreBreakdown{
		CategoryScore: profile.CategoryWeights[book.Category],
		AuthorScore:   profile.AuthorWeights[book.Author],
	}
	if len(profile.ContentVector) > 0 {
		if vec, err := vs.VectorOf(book.ID); err == nil {
			breakdown.ContentScore = clamp01(profile.ContentVector.Dot(vec))
		}
	}
	breakdown.Relevance = clamp01(blend.Category*breakdown.CategoryScore +
		blend.Author*breakdown.AuthorScore +
		blend.Content*breakdown.ContentScore)
	return breakdown
}

// recommendationReason phrases which component dominated the blend. A zero
// relevance means there was no personalization signal at all, which gets an
// explicit cold-start explanation instead of a fabricated one.
func recommendationReason(s ScoreBreakdown, book Book, blend BlendWeights) string {
	if s.Relevance == 0 {
		return "Recommended from the latest available listings while we learn your preferences"
	}

	category := blend.Category * s.CategoryScore
	author := blend.Author * s.AuthorScore
	content := blend.Content * s.ContentScore

	switch {
	case category >= author && category >= content:
		return fmt.Sprintf("Recommended because you've shown interest in %s books", book.Category)
	case author >= content:
		return fmt.Sprintf("Recommended because you've liked books by %s", book.Author)
	default:
		return "Recommended because it closely matches books you've engaged with"
	}
}

// SimilarBooks returns up to limit books most similar to the given one in
// the current generation, with their catalog metadata attached.
func (e *Engine) SimilarBooks(bookID, limit int) ([]SimilarBook, error) {
	gen := e.current.Load()
	if gen == nil {
		return nil, ErrNotFitted
	}
	if limit <= 0 {
		limit = e.config.DefaultLimit
	}

	scores, err := gen.space.TopSimilar(bookID, limit)
	if err != nil {
		return nil, err
	}

	similar := make([]SimilarBook, 0, len(scores))
	for _, sc := range scores {
		similar = append(similar, SimilarBook{
			Book:            gen.books[sc.BookID],
			SimilarityScore: sc.Score,
		})
	}
	return similar, nil
}

// Similarity returns the cosine similarity between two books in the current
// generation.
func (e *Engine) Similarity(a, b int) (float64, error) {
	gen := e.current.Load()
	if gen == nil {
		return 0, ErrNotFitted
	}
	return gen.space.Similarity(a, b)
}

// Stats reports a user's interaction statistics. It reads the catalog
// directly rather than the fit snapshot, so it works before the first Fit.
func (e *Engine) Stats(ctx context.Context, userID int) (UserStats, error) {
	interactions, err := e.provider.GetUserInteractions(ctx, userID)
	if err != nil {
		return UserStats{}, fmt.Errorf("load interactions: %w", err)
	}
	books, err := e.provider.GetBooks(ctx)
	if err != nil {
		return UserStats{}, fmt.Errorf("load catalog: %w", err)
	}
	byID := make(map[int]Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return BuildStats(interactions, byID), nil
}

// Status describes the current generation for health reporting.
func (e *Engine) Status() Status {
	gen := e.current.Load()
	if gen == nil {
		return Status{}
	}
	return Status{
		Fitted:         true,
		Version:        gen.version,
		FittedAt:       gen.fittedAt,
		BookCount:      len(gen.books),
		VocabularySize: gen.space.VocabularySize(),
	}
}
