// OnlineBookExchange - Peer-to-Peer Book Exchange Platform
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/guruvardhan-tech-village/web-OnlineBookExchange

package recommend

import "math"

// Vector is a sparse term-index -> weight mapping. All weights are
// non-negative, so cosine similarity over Vectors stays in [0, 1].
type Vector map[int]float64

// Dot returns the dot product of v and other.
func (v Vector) Dot(other Vector) float64 {
	// Iterate the smaller side.
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for i, w := range v {
		sum += w * other[i]
	}
	return sum
}

// Norm returns the L2 norm of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Normalized returns a copy of v scaled to unit length. A zero vector is
// returned unchanged.
func (v Vector) Normalized() Vector {
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	out := make(Vector, len(v))
	for i, w := range v {
		out[i] = w / norm
	}
	return out
}

// Cosine returns the cosine similarity of two unit-or-shorter vectors,
// clamped to [0, 1] to absorb floating-point drift. Either side being a
// zero vector yields 0.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp01(a.Dot(b) / (na * nb))
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
