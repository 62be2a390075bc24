// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phrase

import (
	"github.com/biogo/store/interval"

	"github.com/smtools/ppe/internal/align"
)

// Index is a queryable index over a fixed set of rectangles, keyed by
// source span, built once and queried many times — the same
// build-then-query interval.IntTree idiom used for annotation lookups
// elsewhere in this codebase's lineage (no deletion is ever required,
// since the rectangle set indexed is immutable once extraction for a
// sentence pair has finished).
type Index struct {
	tree *interval.IntTree
	byID map[uintptr]align.Rect
}

// rectNode adapts a Rect to biogo/store/interval's IntInterface, indexing
// on the half-open source span [IMin, IMax+1).
type rectNode struct {
	align.Rect
	id uintptr
}

func (n rectNode) ID() uintptr { return n.id }

func (n rectNode) Range() interval.IntRange {
	return interval.IntRange{Start: n.IMin, End: n.IMax + 1}
}

func (n rectNode) Overlap(b interval.IntRange) bool {
	return n.IMin < b.End && b.Start < n.IMax+1
}

// NewIndex builds an Index over rects.
func NewIndex(rects []align.Rect) *Index {
	x := &Index{tree: &interval.IntTree{}, byID: make(map[uintptr]align.Rect, len(rects))}
	for i, r := range rects {
		id := uintptr(i) + 1
		node := rectNode{Rect: r, id: id}
		x.tree.Insert(node, true)
		x.byID[id] = r
	}
	x.tree.AdjustRanges()
	return x
}

// CoveringSource returns every indexed rectangle whose source span
// contains index i.
func (x *Index) CoveringSource(i int) []align.Rect {
	hits := x.tree.Get(rectNode{Rect: align.Rect{IMin: i, IMax: i}})
	out := make([]align.Rect, 0, len(hits))
	for _, h := range hits {
		out = append(out, x.byID[h.(rectNode).id])
	}
	return out
}

// MaxCoverage returns the greatest number of indexed rectangles that
// cover any single source position in [0, srcLen).
func (x *Index) MaxCoverage(srcLen int) int {
	max := 0
	for i := 0; i < srcLen; i++ {
		if n := len(x.CoveringSource(i)); n > max {
			max = n
		}
	}
	return max
}
