// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import "sort"

// Similarity returns the cosine similarity between two books of this
// generation. It is symmetric, bounded to [0, 1], and 1.0 when both ids are
// equal, including for books whose text produced a zero vector.
func (vs *VectorSpace) Similarity(a, b int) (float64, error) {
	va, ok := vs.vectors[a]
	if !ok {
		return 0, ErrUnknownBook
	}
	vb, ok := vs.vectors[b]
	if !ok {
		return 0, ErrUnknownBook
	}
	if a == b {
		return 1.0, nil
	}
	// Stored vectors are unit length, so the dot product is the cosine.
	return clamp01(va.Dot(vb)), nil
}

// TopSimilar returns up to k books most similar to the given one, excluding
// the book itself. Results are ordered by score descending with ascending
// book id breaking ties, so output is deterministic.
func (vs *VectorSpace) TopSimilar(bookID, k int) ([]BookScore, error) {
	base, ok := vs.vectors[bookID]
	if !ok {
		return nil, ErrUnknownBook
	}
	if k <= 0 {
		return []BookScore{}, nil
	}

	scores := make([]BookScore, 0, len(vs.vectors)-1)
	for id, vec := range vs.vectors {
		if id == bookID {
			continue
		}
		scores = append(scores, BookScore{BookID: id, Score: clamp01(base.Dot(vec))})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].BookID < scores[j].BookID
	})

	if len(scores) > k {
		scores = scores[:k]
	}
	return scores, nil
}
