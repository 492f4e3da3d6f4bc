// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

// Package recommend implements the content-based recommendation engine for
// the book exchange: TF-IDF vectorization of listing text, cosine
// similarity between books, weighted interaction profiles per user, and a
// blended relevance ranking with human-readable reasons.
//
// The engine has no dependency on the storage layer; the DataProvider
// interface supplies the catalog and the interaction log. All shared state
// lives in one immutable generation behind an atomic pointer: Fit builds a
// complete replacement and swaps it in, so readers never see a half-built
// vocabulary.
package recommend
