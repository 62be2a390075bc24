// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phrase

import (
	"strings"

	"github.com/smtools/ppe/internal/align"
)

// Null is the sentinel token standing in for the absent side of an
// unaligned-word pseudo-pair (spec.md §4.4). It is reserved from the
// token vocabulary: a corpus containing the literal token "NULL" would
// collide with it, but detecting and escaping that is outside this
// system's scope (spec.md §1, "the corpus tokenizer... is assumed").
const Null = "NULL"

// Pair is an ordered source/target phrase pair.
type Pair struct {
	Source, Target string
}

// Materialize projects each rectangle in rects onto srcTokens and
// tgtTokens, joining the spanned tokens with single spaces (spec.md §3,
// "Phrase pair").
func Materialize(rects []align.Rect, srcTokens, tgtTokens []string) []Pair {
	pairs := make([]Pair, len(rects))
	for i, r := range rects {
		pairs[i] = Pair{
			Source: strings.Join(srcTokens[r.IMin:r.IMax+1], " "),
			Target: strings.Join(tgtTokens[r.JMin:r.JMax+1], " "),
		}
	}
	return pairs
}

// UnalignedPairs returns one pseudo-pair (S[i], Null) for every source
// index with no alignment point, and one pseudo-pair (Null, T[j]) for
// every target index with no alignment point (spec.md §4.4).
func UnalignedPairs(a align.Set, srcTokens, tgtTokens []string) []Pair {
	rows, cols := axisOccupancy(a)
	var pairs []Pair
	for i, tok := range srcTokens {
		if !rows[i] {
			pairs = append(pairs, Pair{Source: tok, Target: Null})
		}
	}
	for j, tok := range tgtTokens {
		if !cols[j] {
			pairs = append(pairs, Pair{Source: Null, Target: tok})
		}
	}
	return pairs
}
