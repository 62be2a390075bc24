// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

// Rect is a phrase-alignment rectangle: the inclusive source span
// [IMin, IMax] paired with the inclusive target span [JMin, JMax].
type Rect struct {
	IMin, JMin, IMax, JMax int
}

// SourceLen returns the number of source indices spanned by r.
func (r Rect) SourceLen() int { return r.IMax - r.IMin + 1 }

// TargetLen returns the number of target indices spanned by r.
func (r Rect) TargetLen() int { return r.JMax - r.JMin + 1 }

// WithinBound reports whether both spans of r are no longer than L.
// A non-positive L is treated as unbounded (spec.md §4.3 edge case,
// "Completeness under L = ∞").
func (r Rect) WithinBound(l int) bool {
	if l <= 0 {
		return true
	}
	return r.SourceLen() <= l && r.TargetLen() <= l
}

// InBounds reports whether r's spans lie within sentences of the given
// lengths.
func (r Rect) InBounds(srcLen, tgtLen int) bool {
	return r.IMin >= 0 && r.JMin >= 0 && r.IMax < srcLen && r.JMax < tgtLen
}

// Range returns the bounding rectangle of a non-empty point set. Range
// panics if pts is empty; callers must only invoke it on non-empty sets,
// per spec.md §4.2 ("undefined on empty input").
func Range(pts Set) Rect {
	first := true
	var r Rect
	for p := range pts {
		if first {
			r = Rect{IMin: p.I, JMin: p.J, IMax: p.I, JMax: p.J}
			first = false
			continue
		}
		if p.I < r.IMin {
			r.IMin = p.I
		}
		if p.I > r.IMax {
			r.IMax = p.I
		}
		if p.J < r.JMin {
			r.JMin = p.J
		}
		if p.J > r.JMax {
			r.JMax = p.J
		}
	}
	if first {
		panic("align: Range of empty point set")
	}
	return r
}

// PartialIn reports whether p straddles r: exactly one of p's coordinates
// lies within r's corresponding axis interval. A straddling point violates
// rectangle consistency.
func PartialIn(p Point, r Rect) bool {
	inI := r.IMin <= p.I && p.I <= r.IMax
	inJ := r.JMin <= p.J && p.J <= r.JMax
	return inI != inJ
}

// Combine returns the minimum bounding rectangle of a ∪ b.
func Combine(a, b Rect) Rect {
	return Rect{
		IMin: min(a.IMin, b.IMin),
		JMin: min(a.JMin, b.JMin),
		IMax: max(a.IMax, b.IMax),
		JMax: max(a.JMax, b.JMax),
	}
}

// Consistent reports whether no point of pts straddles r.
func Consistent(pts Set, r Rect) bool {
	for p := range pts {
		if PartialIn(p, r) {
			return false
		}
	}
	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
