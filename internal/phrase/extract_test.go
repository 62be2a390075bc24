// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phrase

import (
	"sort"
	"testing"

	"github.com/smtools/ppe/internal/align"
)

func rectSet(rs ...align.Rect) map[align.Rect]bool {
	m := make(map[align.Rect]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

func TestExtractS1(t *testing.T) {
	a := align.NewSet(align.Point{I: 0, J: 0}, align.Point{I: 1, J: 1}, align.Point{I: 2, J: 2})
	got := Extract(a, 3, 3, 3)

	want := rectSet(
		align.Rect{0, 0, 0, 0},
		align.Rect{1, 1, 1, 1},
		align.Rect{2, 2, 2, 2},
		align.Rect{0, 0, 1, 1},
		align.Rect{1, 1, 2, 2},
		align.Rect{0, 0, 2, 2},
	)
	gotSet := rectSet(got...)
	if !setsEqual(gotSet, want) {
		t.Errorf("Extract S1 = %v, want %v", got, sortedRects(want))
	}
}

func TestExtractS2(t *testing.T) {
	a := align.NewSet(align.Point{I: 0, J: 1}, align.Point{I: 1, J: 0})
	got := Extract(a, 2, 2, 2)

	want := rectSet(
		align.Rect{0, 1, 0, 1},
		align.Rect{1, 0, 1, 0},
		align.Rect{0, 0, 1, 1},
	)
	gotSet := rectSet(got...)
	if !setsEqual(gotSet, want) {
		t.Errorf("Extract S2 = %v, want exactly %v", got, sortedRects(want))
	}
	if gotSet[align.Rect{0, 0, 0, 0}] {
		t.Error("Extract S2: unexpected singleton (0,0,0,0); point (0,0) is not an alignment point and (0,0) straddles it")
	}
}

func TestExtractS3(t *testing.T) {
	a := align.NewSet(align.Point{I: 0, J: 0}, align.Point{I: 2, J: 2})
	got := Extract(a, 3, 3, 3)
	gotSet := rectSet(got...)

	for _, r := range []align.Rect{{0, 0, 0, 0}, {2, 2, 2, 2}, {0, 0, 2, 2}} {
		if !gotSet[r] {
			t.Errorf("Extract S3: missing expected rectangle %v in %v", r, sortedRects(gotSet))
		}
	}
}

func TestExtractConsistency(t *testing.T) {
	a := align.NewSet(
		align.Point{I: 0, J: 0}, align.Point{I: 1, J: 2}, align.Point{I: 2, J: 1},
		align.Point{I: 3, J: 3},
	)
	got := Extract(a, 4, 4, 4)
	for _, r := range got {
		if !align.Consistent(a, r) {
			t.Errorf("rectangle %v is not consistent with %v", r, a)
		}
		if r.SourceLen() > 4 || r.TargetLen() > 4 {
			t.Errorf("rectangle %v exceeds bound", r)
		}
		if !r.InBounds(4, 4) {
			t.Errorf("rectangle %v out of sentence bounds", r)
		}
	}
}

func TestExtractCompletenessUnderUnboundedL(t *testing.T) {
	a := align.NewSet(align.Point{I: 0, J: 0}, align.Point{I: 1, J: 1}, align.Point{I: 2, J: 2})
	got := Extract(a, 3, 3, 0) // L <= 0 means unbounded
	gotSet := rectSet(got...)
	for p := range a {
		r := align.Rect{IMin: p.I, JMin: p.J, IMax: p.I, JMax: p.J}
		if !gotSet[r] {
			t.Errorf("missing singleton %v under unbounded L", r)
		}
	}
}

func TestExtractMonotonicInL(t *testing.T) {
	a := align.NewSet(align.Point{I: 0, J: 0}, align.Point{I: 1, J: 1}, align.Point{I: 2, J: 2})
	small := rectSet(Extract(a, 3, 3, 1)...)
	large := rectSet(Extract(a, 3, 3, 3)...)
	for r := range small {
		if !large[r] {
			t.Errorf("monotonicity violated: %v present at L=1 but absent at L=3", r)
		}
	}
}

func TestExtractEmptyAlignment(t *testing.T) {
	got := Extract(align.NewSet(), 3, 3, 3)
	if len(got) != 0 {
		t.Errorf("Extract(empty) = %v, want empty", got)
	}
}

func TestMaterializeAndUnaligned(t *testing.T) {
	src := []string{"a", "b", "c"}
	tgt := []string{"x", "y", "z"}
	rects := []align.Rect{{0, 0, 0, 0}, {0, 0, 2, 2}}
	pairs := Materialize(rects, src, tgt)
	want := []Pair{{"a", "x"}, {"a b c", "x y z"}}
	for i, p := range pairs {
		if p != want[i] {
			t.Errorf("Materialize()[%d] = %v, want %v", i, p, want[i])
		}
	}

	a := align.NewSet(align.Point{I: 0, J: 0}, align.Point{I: 2, J: 2})
	un := UnalignedPairs(a, src, tgt)
	wantUn := rectPairSet([]Pair{{"b", Null}, {Null, "y"}})
	gotUn := rectPairSet(un)
	if !pairSetsEqual(gotUn, wantUn) {
		t.Errorf("UnalignedPairs = %v, want %v", un, wantUn)
	}
}

func TestIndexCoveringSource(t *testing.T) {
	rects := []align.Rect{{0, 0, 0, 0}, {0, 0, 1, 1}, {1, 1, 1, 1}}
	idx := NewIndex(rects)
	got := idx.CoveringSource(0)
	if len(got) != 2 {
		t.Errorf("CoveringSource(0) = %v, want 2 rectangles", got)
	}
	got1 := idx.CoveringSource(1)
	if len(got1) != 2 {
		t.Errorf("CoveringSource(1) = %v, want 2 rectangles", got1)
	}
	if max := idx.MaxCoverage(2); max != 2 {
		t.Errorf("MaxCoverage = %d, want 2", max)
	}
}

func setsEqual(a, b map[align.Rect]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if !b[r] {
			return false
		}
	}
	return true
}

func sortedRects(m map[align.Rect]bool) []align.Rect {
	out := make([]align.Rect, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].IMin < out[j].IMin
	})
	return out
}

func rectPairSet(ps []Pair) map[Pair]bool {
	m := make(map[Pair]bool, len(ps))
	for _, p := range ps {
		m[p] = true
	}
	return m
}

func pairSetsEqual(a, b map[Pair]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if !b[p] {
			return false
		}
	}
	return true
}
