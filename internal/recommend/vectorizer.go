// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import (
	"context"
	"math"
	"sort"
)

// DefaultMaxFeatures caps the vocabulary at the most frequent terms across
// the corpus.
const DefaultMaxFeatures = 5000

// VectorSpace is one immutable fit generation: the vocabulary, its IDF
// table, and an L2-normalized TF-IDF vector per book. A new fit produces a
// whole new VectorSpace; vectors must never be mixed across generations.
//
// Term weight is tf * idf with the smoothed IDF variant
// ln((1+N)/(1+df)) + 1, constant within a generation. Because every stored
// vector is unit length, cosine similarity reduces to a dot product.
type VectorSpace struct {
	vocabulary map[string]int
	idf        []float64
	vectors    map[int]Vector
	docCount   int
}

// FitVectorSpace builds a vector space over the given books' normalized
// text (title + author + category + description). It returns ErrEmptyCorpus
// when no book contributes a single token, and honors ctx cancellation
// between documents since fitting a large catalog is the one long-running
// operation.
func FitVectorSpace(ctx context.Context, books []Book, maxFeatures int) (*VectorSpace, error) {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	docs := make([]map[string]int, len(books))
	df := make(map[string]int)
	corpusFreq := make(map[string]int64)
	hasText := false

	for i := range books {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counts := make(map[string]int)
		for _, tok := range Tokenize(bookText(books[i])) {
			counts[tok]++
		}
		docs[i] = counts
		if len(counts) > 0 {
			hasText = true
		}
		for term, c := range counts {
			df[term]++
			corpusFreq[term] += int64(c)
		}
	}

	if len(books) == 0 || !hasText {
		return nil, ErrEmptyCorpus
	}

	// Keep the most frequent terms; ties break lexicographically so the
	// vocabulary is deterministic for a given corpus.
	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(books))
	for i, term := range terms {
		vocabulary[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make(map[int]Vector, len(books))
	for i := range books {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec := make(Vector)
		for term, c := range docs[i] {
			idx, ok := vocabulary[term]
			if !ok {
				continue
			}
			vec[idx] = float64(c) * idf[idx]
		}
		vectors[books[i].ID] = vec.Normalized()
	}

	return &VectorSpace{
		vocabulary: vocabulary,
		idf:        idf,
		vectors:    vectors,
		docCount:   len(books),
	}, nil
}

// VectorOf returns the TF-IDF vector for a book in this generation. The
// returned vector is shared and must be treated as read-only.
func (vs *VectorSpace) VectorOf(bookID int) (Vector, error) {
	vec, ok := vs.vectors[bookID]
	if !ok {
		return nil, ErrUnknownBook
	}
	return vec, nil
}

// Contains reports whether the book was part of this fit.
func (vs *VectorSpace) Contains(bookID int) bool {
	_, ok := vs.vectors[bookID]
	return ok
}

// VocabularySize returns the number of terms retained by this fit.
func (vs *VectorSpace) VocabularySize() int {
	return len(vs.vocabulary)
}

// DocumentCount returns the number of books this generation was fitted on.
func (vs *VectorSpace) DocumentCount() int {
	return vs.docCount
}

// BookIDs returns the ids of all books in this generation, ascending.
func (vs *VectorSpace) BookIDs() []int {
	ids := make([]int, 0, len(vs.vectors))
	for id := range vs.vectors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
