// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import (
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
)

// Tokenize turns raw listing text into a normalized token sequence:
// lower-cased, punctuation and digits stripped, English stop-words removed,
// unigrams plus adjacent-word bigrams. Deterministic, and empty input yields
// an empty sequence rather than an error.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteByte(' ')
		}
	}

	cleaned := stopwords.CleanString(b.String(), "en", false)
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return nil
	}

	tokens := make([]string, 0, 2*len(words)-1)
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}

// bookText concatenates the textual fields that feed the vectorizer.
func bookText(b Book) string {
	parts := []string{b.Title, b.Author, b.Category}
	if b.Description != "" {
		parts = append(parts, b.Description)
	}
	return strings.Join(parts, " ")
}
