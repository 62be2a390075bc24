// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package phrase implements the alignment-consistent phrase extraction
// closure (C3) and the projection of rectangles onto token strings (C4).
package phrase

import (
	"sort"

	"github.com/smtools/ppe/internal/align"
)

// Extract returns every consistent phrase-alignment rectangle for word
// alignment a over a sentence pair of the given lengths, bounded by maximum
// phrase length l (l <= 0 means unbounded, per spec.md §4.3 "Completeness
// under L = ∞"). The result has no duplicates; its order is deterministic
// but otherwise unspecified.
//
// The algorithm follows the two-phase design of spec.md §4.3: Phase A grows
// a maximal consistent rectangle around each alignment point by repeated
// straddling-point absorption (the "closure"); Phase B drains the resulting
// work queue, attempting unaligned-word padding and pairwise combine-and-
// fix-up against every other queued rectangle, feeding newly admissible
// rectangles back into the queue until it is empty. Every alignment point
// also contributes its own singleton rectangle to the output, guaranteeing
// single-word phrase pairs are always emitted (spec.md §4.3, final
// paragraph).
func Extract(a align.Set, srcLen, tgtLen, l int) []align.Rect {
	out := make(map[align.Rect]struct{})
	if len(a) == 0 {
		return nil
	}

	rows, cols := axisOccupancy(a)

	remaining := a.Clone()
	q := newQueue()
	for _, r := range closure(remaining, l) {
		q.insert(r)
	}

	for {
		r, ok := q.pop()
		if !ok {
			break
		}
		if _, seen := out[r]; seen {
			continue
		}
		out[r] = struct{}{}

		var fresh []align.Rect
		fresh = append(fresh, unitExpansions(r, rows, cols, srcLen, tgtLen, l)...)
		for _, r2 := range q.all() {
			if r2 == r {
				continue
			}
			if r3, ok := fixup(align.Combine(r, r2), a, l); ok && r3 != r {
				fresh = append(fresh, r3)
			}
		}
		for _, nr := range fresh {
			q.insert(nr)
		}
	}

	for p := range a {
		out[align.Rect{IMin: p.I, JMin: p.J, IMax: p.I, JMax: p.J}] = struct{}{}
	}

	rects := make([]align.Rect, 0, len(out))
	for r := range out {
		rects = append(rects, r)
	}
	sort.Slice(rects, func(i, j int) bool {
		a, b := rects[i], rects[j]
		switch {
		case a.IMin != b.IMin:
			return a.IMin < b.IMin
		case a.JMin != b.JMin:
			return a.JMin < b.JMin
		case a.IMax != b.IMax:
			return a.IMax < b.IMax
		default:
			return a.JMax < b.JMax
		}
	})
	return rects
}

// closure performs Phase A: it seeds a maximal consistent rectangle from
// each remaining alignment point, absorbing any point that straddles the
// growing rectangle, until none remains. Every point is removed from
// remaining as it is absorbed, so each alignment point participates in
// exactly one seed.
func closure(remaining align.Set, l int) []align.Rect {
	var seeds []align.Rect
	for len(remaining) > 0 {
		var seed align.Point
		for p := range remaining {
			seed = p
			break
		}
		delete(remaining, seed)
		r := align.Rect{IMin: seed.I, JMin: seed.J, IMax: seed.I, JMax: seed.J}

		for {
			var straddling []align.Point
			for p := range remaining {
				if align.PartialIn(p, r) {
					straddling = append(straddling, p)
				}
			}
			if len(straddling) == 0 {
				break
			}
			for _, p := range straddling {
				delete(remaining, p)
				r = align.Combine(r, align.Rect{IMin: p.I, JMin: p.J, IMax: p.I, JMax: p.J})
			}
		}

		if r.WithinBound(l) {
			seeds = append(seeds, r)
		}
	}
	return seeds
}

// fixup expands r until no point of a straddles it, per spec.md §4.3's
// Phase B combine step. It reports false if the span ever exceeds l.
func fixup(r align.Rect, a align.Set, l int) (align.Rect, bool) {
	for {
		var straddling []align.Point
		for p := range a {
			if align.PartialIn(p, r) {
				straddling = append(straddling, p)
			}
		}
		if len(straddling) == 0 {
			break
		}
		for _, p := range straddling {
			r = align.Combine(r, align.Rect{IMin: p.I, JMin: p.J, IMax: p.I, JMax: p.J})
		}
		if !r.WithinBound(l) {
			return align.Rect{}, false
		}
	}
	if !r.WithinBound(l) {
		return align.Rect{}, false
	}
	return r, true
}

// unitExpansions returns the admissible unit-padding expansions of r: a
// row or column is only padded onto r when it holds no alignment point at
// all (the classical "loose" extraction allowance, spec.md §4.3).
func unitExpansions(r align.Rect, rows, cols map[int]bool, srcLen, tgtLen, l int) []align.Rect {
	var out []align.Rect
	try := func(nr align.Rect) {
		if !nr.InBounds(srcLen, tgtLen) || !nr.WithinBound(l) {
			return
		}
		out = append(out, nr)
	}
	if r.IMin-1 >= 0 && !rows[r.IMin-1] {
		try(align.Rect{IMin: r.IMin - 1, JMin: r.JMin, IMax: r.IMax, JMax: r.JMax})
	}
	if r.IMax+1 < srcLen && !rows[r.IMax+1] {
		try(align.Rect{IMin: r.IMin, JMin: r.JMin, IMax: r.IMax + 1, JMax: r.JMax})
	}
	if r.JMin-1 >= 0 && !cols[r.JMin-1] {
		try(align.Rect{IMin: r.IMin, JMin: r.JMin - 1, IMax: r.IMax, JMax: r.JMax})
	}
	if r.JMax+1 < tgtLen && !cols[r.JMax+1] {
		try(align.Rect{IMin: r.IMin, JMin: r.JMin, IMax: r.IMax, JMax: r.JMax + 1})
	}
	return out
}

// axisOccupancy reports which source rows and target columns hold at
// least one alignment point.
func axisOccupancy(a align.Set) (rows, cols map[int]bool) {
	rows = make(map[int]bool, len(a))
	cols = make(map[int]bool, len(a))
	for p := range a {
		rows[p.I] = true
		cols[p.J] = true
	}
	return rows, cols
}

// queue is the Phase B work queue Q. New candidates produced while
// draining are merged back in; pop order is unspecified but deterministic
// for a given insertion sequence. A rectangle is inserted at most once
// over the lifetime of the queue, whether or not it has already been
// drained, since re-deriving an already-output rectangle contributes
// nothing further.
type queue struct {
	items  []align.Rect
	queued map[align.Rect]bool
}

func newQueue() *queue {
	return &queue{queued: make(map[align.Rect]bool)}
}

func (q *queue) insert(r align.Rect) {
	if q.queued[r] {
		return
	}
	q.queued[r] = true
	q.items = append(q.items, r)
}

func (q *queue) pop() (align.Rect, bool) {
	if len(q.items) == 0 {
		return align.Rect{}, false
	}
	r := q.items[0]
	q.items = q.items[1:]
	return r, true
}

// all returns the rectangles currently queued, i.e. admitted but not yet
// drained by pop.
func (q *queue) all() []align.Rect {
	return q.items
}
