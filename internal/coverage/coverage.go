// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coverage implements the held-out reconstruction search (C8): can
// a held-out phrase pair be rebuilt from at most maxConcat+1 pieces of a
// training phrase-pair set, in any target-side reordering?
package coverage

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/smtools/ppe/internal/phrase"
)

// Table is the set of training phrase pairs reconstruction may draw on.
type Table map[phrase.Pair]bool

// NewTable builds a Table from a slice of pairs.
func NewTable(pairs []phrase.Pair) Table {
	t := make(Table, len(pairs))
	for _, p := range pairs {
		t[p] = true
	}
	return t
}

// Evaluator answers reachability and coverage queries against a fixed
// training Table.
type Evaluator struct {
	Table Table

	// UseMatching selects the bipartite-matching search over the
	// brute-force permutation search for n >= 1 splits (spec.md §4.8's
	// Open Question on algorithmic choice; decided in SPEC_FULL.md to
	// default to brute force, since max_concat is documented to stay
	// small enough that permutation enumeration is not the bottleneck).
	UseMatching bool
}

// NewEvaluator returns an Evaluator over table.
func NewEvaluator(table Table) *Evaluator {
	return &Evaluator{Table: table}
}

// Reachable reports whether (s, t) can be reconstructed from the training
// table using at most maxConcat+1 pieces per side (spec.md §4.8).
func (e *Evaluator) Reachable(s, t string, maxConcat int) bool {
	srcTokens := strings.Fields(s)
	tgtTokens := strings.Fields(t)
	for n := 0; n <= maxConcat; n++ {
		if e.reachableAt(srcTokens, tgtTokens, n) {
			return true
		}
	}
	return false
}

// reachableAt tries every (n+1)-way contiguous split of both sides and,
// for each pairing of parts, looks for a permutation of the target parts
// under which every (source part, target part) pair lies in the table.
func (e *Evaluator) reachableAt(srcTokens, tgtTokens []string, n int) bool {
	k := n + 1
	if len(srcTokens) < k || len(tgtTokens) < k {
		return false
	}
	for _, srcParts := range contiguousSplits(srcTokens, k) {
		for _, tgtParts := range contiguousSplits(tgtTokens, k) {
			if e.UseMatching && k >= 2 {
				if e.matches(srcParts, tgtParts) {
					return true
				}
				continue
			}
			if e.permutes(srcParts, tgtParts) {
				return true
			}
		}
	}
	return false
}

// permutes brute-forces every permutation of tgtParts looking for one
// under which every aligned (source part, target part) pair is a training
// pair (spec.md §4.8, the documented baseline algorithm).
func (e *Evaluator) permutes(srcParts, tgtParts []string) bool {
	k := len(srcParts)
	for _, perm := range combin.Permutations(k, k) {
		ok := true
		for i, j := range perm {
			if !e.Table[phrase.Pair{Source: srcParts[i], Target: tgtParts[j]}] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// matches decides the same question as permutes by testing for a perfect
// bipartite matching between source parts and target parts, edges being
// training-table membership. This scales better than exhaustive
// permutation once k grows, at the cost of only deciding existence (it
// does not recover which permutation matched).
func (e *Evaluator) matches(srcParts, tgtParts []string) bool {
	k := len(srcParts)
	g := simple.NewUndirectedGraph()
	for i := 0; i < 2*k; i++ {
		g.AddNode(simple.Node(i))
	}
	for i, sp := range srcParts {
		for j, tp := range tgtParts {
			if e.Table[phrase.Pair{Source: sp, Target: tp}] {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(k + j)})
			}
		}
	}
	return maxBipartiteMatching(g, k) == k
}

// maxBipartiteMatching runs Kuhn's augmenting-path algorithm over a
// bipartite graph whose left partition is node IDs [0, k) and whose right
// partition is node IDs [k, 2k), returning the size of a maximum matching.
func maxBipartiteMatching(g graph.Undirected, k int) int {
	matchRight := make(map[int64]int64) // right node -> matched left node
	size := 0
	for left := int64(0); left < int64(k); left++ {
		visited := make(map[int64]bool)
		if augment(g, left, visited, matchRight) {
			size++
		}
	}
	return size
}

func augment(g graph.Undirected, left int64, visited map[int64]bool, matchRight map[int64]int64) bool {
	nodes := graph.NodesOf(g.From(left))
	for _, n := range nodes {
		right := n.ID()
		if visited[right] {
			continue
		}
		visited[right] = true
		matchedLeft, taken := matchRight[right]
		if !taken || augment(g, matchedLeft, visited, matchRight) {
			matchRight[right] = left
			return true
		}
	}
	return false
}

// contiguousSplits returns every way of splitting tokens into k
// contiguous, non-empty, order-preserving parts.
func contiguousSplits(tokens []string, k int) [][]string {
	n := len(tokens)
	if k <= 0 || k > n {
		return nil
	}
	if k == 1 {
		return [][]string{{strings.Join(tokens, " ")}}
	}

	var out [][]string
	var rec func(start, remaining int, parts []string)
	rec = func(start, remaining int, parts []string) {
		if remaining == 1 {
			full := append(parts, strings.Join(tokens[start:], " "))
			out = append(out, full)
			return
		}
		for end := start + 1; end <= n-(remaining-1); end++ {
			next := make([]string, len(parts), len(parts)+1)
			copy(next, parts)
			next = append(next, strings.Join(tokens[start:end], " "))
			rec(end, remaining-1, next)
		}
	}
	rec(0, k, nil)
	return out
}

// Result is the outcome of scoring one held-out pair.
type Result struct {
	Pair      phrase.Pair
	Reachable bool
}

// Evaluate scores every held-out pair against maxConcat and returns the
// per-pair results alongside the overall coverage fraction (spec.md §4.8,
// "Output").
func (e *Evaluator) Evaluate(heldOut []phrase.Pair, maxConcat int) (results []Result, coverage float64) {
	results = make([]Result, len(heldOut))
	var hit int
	for i, p := range heldOut {
		ok := e.Reachable(p.Source, p.Target, maxConcat)
		results[i] = Result{Pair: p, Reachable: ok}
		if ok {
			hit++
		}
	}
	if len(heldOut) > 0 {
		coverage = float64(hit) / float64(len(heldOut))
	}
	return results, coverage
}

// WriteReport splits results into covered and uncovered pairs, one per
// line as "source\ttarget", writing each set to its own stream.
func WriteReport(covered, uncovered io.Writer, results []Result) error {
	for _, r := range results {
		var w io.Writer
		if r.Reachable {
			w = covered
		} else {
			w = uncovered
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Pair.Source, r.Pair.Target); err != nil {
			return err
		}
	}
	return nil
}
