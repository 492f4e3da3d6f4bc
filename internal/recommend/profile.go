// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import (
	"sort"

	"github.com/rs/zerolog"
)

// topCategoryLimit bounds the top-categories breakdown in user stats.
const topCategoryLimit = 5

// minInteractionsForSignal is the interaction count below which a user's
// history is considered too thin for meaningful personalization.
const minInteractionsForSignal = 5

// BuildProfile aggregates a user's weighted interaction history into
// category and author preference distributions plus a content vector (the
// L2-normalized weighted centroid of interacted books' vectors, against the
// given generation).
//
// Interactions referencing books no longer in the catalog snapshot are
// skipped with a debug log; one stale reference must never abort the whole
// profile build. An unrecognized interaction type, in contrast, is corrupt
// data and fails the build.
func BuildProfile(interactions []Interaction, books map[int]Book, vs *VectorSpace, logger zerolog.Logger) (*UserProfile, error) {
	profile := &UserProfile{
		CategoryWeights:  make(map[string]float64),
		AuthorWeights:    make(map[string]float64),
		InteractionCount: len(interactions),
	}

	contentSum := make(Vector)
	for _, inter := range interactions {
		weight, err := inter.Type.Weight()
		if err != nil {
			return nil, err
		}

		book, ok := books[inter.BookID]
		if !ok {
			logger.Debug().
				Int("book_id", inter.BookID).
				Str("interaction_type", string(inter.Type)).
				Msg("skipping stale interaction: book not in catalog snapshot")
			continue
		}

		profile.CategoryWeights[book.Category] += weight
		profile.AuthorWeights[book.Author] += weight

		if vs == nil {
			continue
		}
		vec, err := vs.VectorOf(book.ID)
		if err != nil {
			logger.Debug().
				Int("book_id", book.ID).
				Msg("skipping content contribution: book not vectorized")
			continue
		}
		for idx, w := range vec {
			contentSum[idx] += weight * w
		}
	}

	normalizeWeights(profile.CategoryWeights)
	normalizeWeights(profile.AuthorWeights)
	if len(contentSum) > 0 {
		profile.ContentVector = contentSum.Normalized()
	}

	return profile, nil
}

// normalizeWeights scales map values in place to sum to 1.
func normalizeWeights(m map[string]float64) {
	var sum float64
	for _, v := range m {
		sum += v
	}
	if sum == 0 {
		return
	}
	for k := range m {
		m[k] /= sum
	}
}

// BuildStats summarizes a user's slice of the interaction log: totals, a
// per-type breakdown, and the categories they touch most. It shares the
// catalog-snapshot lookup semantics of BuildProfile but counts raw
// interactions rather than weighted signal.
func BuildStats(interactions []Interaction, books map[int]Book) UserStats {
	stats := UserStats{
		TotalInteractions:    len(interactions),
		InteractionBreakdown: make(map[InteractionType]int),
		TopCategories:        []CategoryCount{},
		HasSufficientData:    len(interactions) >= minInteractionsForSignal,
	}

	categoryCounts := make(map[string]int)
	for _, inter := range interactions {
		stats.InteractionBreakdown[inter.Type]++
		if book, ok := books[inter.BookID]; ok {
			categoryCounts[book.Category]++
		}
	}

	for category, count := range categoryCounts {
		stats.TopCategories = append(stats.TopCategories, CategoryCount{
			Category:         category,
			InteractionCount: count,
		})
	}
	sort.Slice(stats.TopCategories, func(i, j int) bool {
		if stats.TopCategories[i].InteractionCount != stats.TopCategories[j].InteractionCount {
			return stats.TopCategories[i].InteractionCount > stats.TopCategories[j].InteractionCount
		}
		return stats.TopCategories[i].Category < stats.TopCategories[j].Category
	})
	if len(stats.TopCategories) > topCategoryLimit {
		stats.TopCategories = stats.TopCategories[:topCategoryLimit]
	}

	return stats
}
