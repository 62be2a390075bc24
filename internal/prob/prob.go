// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prob converts corpus frequency counters into phrase- and
// lexical-level translation probabilities, including the simplified
// lexical-weight approximation (C6).
package prob

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smtools/ppe/internal/align"
	"github.com/smtools/ppe/internal/corpus"
	"github.com/smtools/ppe/internal/phrase"
)

// ErrInconsistentCounts is returned when a probability computation would
// divide by a zero single-side count (spec.md §4.6), and by LexicalWeight
// when an internal alignment point lies outside the phrase.
var ErrInconsistentCounts = errors.New("prob: inconsistent counts: zero divisor")

// ErrUnknownLexicalPair is returned by LexicalWeight when a word pair has no
// entry in the lexical translation table supplied to it. Unlike a missing
// phrase-table entry, a missing word-translation probability indicates the
// lexical table was built from a different corpus than the one being
// scored, so this is treated as fatal rather than silently defaulted.
var ErrUnknownLexicalPair = errors.New("prob: lexical pair has no table entry")

// Conditional computes P(s|t) = c(s,t)/c(t) and P(t|s) = c(s,t)/c(s) for a
// phrase pair, given its accumulated Counters.
func Conditional(c *corpus.Counters, p phrase.Pair) (pSGivenT, pTGivenS float64, err error) {
	cst := c.PhrasePair[p]
	cs := c.Source[p.Source]
	ct := c.Target[p.Target]
	if ct == 0 || cs == 0 {
		return 0, 0, fmt.Errorf("%w: pair %v (c(s)=%v, c(t)=%v)", ErrInconsistentCounts, p, cs, ct)
	}
	return cst / ct, cst / cs, nil
}

// TargetMarginal computes P(t) = c(t) / Σc over all target-phrase counts.
func TargetMarginal(c *corpus.Counters, t string) (float64, error) {
	var total float64
	for _, v := range c.Target {
		total += v
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: empty target counter", ErrInconsistentCounts)
	}
	return c.Target[t] / total, nil
}

// Joint computes the joint probability P(s,t) = P(s|t)·P(t), the form used
// by the simple writer variant (spec.md §4.6).
func Joint(c *corpus.Counters, p phrase.Pair) (float64, error) {
	pSGivenT, _, err := Conditional(c, p)
	if err != nil {
		return 0, err
	}
	pT, err := TargetMarginal(c, p.Target)
	if err != nil {
		return 0, err
	}
	return pSGivenT * pT, nil
}

// LexTable is a directional word-translation probability table: the
// probability of one side given the other, keyed by (that side, this side).
type LexTable map[phrase.Pair]float64

// Lookup returns P(to|from) for a directional lexical table entry keyed
// (from, to); ok is false when no entry exists.
func (t LexTable) Lookup(from, to string) (float64, bool) {
	p, ok := t[phrase.Pair{Source: from, Target: to}]
	return p, ok
}

// LexicalWeight computes the source→target lexical weight of a phrase pair
// given its internal word alignment align_ (index pairs into the phrase's
// own token sequences) and the directional lexical table s2t (source word
// -> target word probabilities).
//
// This reproduces the repository's simplification of the textbook
// definition verbatim (spec.md §4.6): rather than averaging P_lex(t_j|s_i)
// over every j aligned to i, it takes the *product* over every aligned
// pair, plus one NULL factor per internally unaligned source word. It is
// documented here as an approximation, not a correction.
func LexicalWeight(srcTokens, tgtTokens []string, align_ align.Set, s2t LexTable) (float64, error) {
	rows := make(map[int]bool, len(align_))
	weight := 1.0
	for p := range align_ {
		if p.I < 0 || p.I >= len(srcTokens) || p.J < 0 || p.J >= len(tgtTokens) {
			return 0, fmt.Errorf("%w: alignment point %v out of phrase bounds", ErrInconsistentCounts, p)
		}
		rows[p.I] = true
		s, t := srcTokens[p.I], tgtTokens[p.J]
		w, ok := s2t.Lookup(s, t)
		if !ok {
			return 0, fmt.Errorf("%w: (%q, %q)", ErrUnknownLexicalPair, s, t)
		}
		weight *= w
	}
	for i, s := range srcTokens {
		if rows[i] {
			continue
		}
		w, ok := s2t.Lookup(s, phrase.Null)
		if !ok {
			return 0, fmt.Errorf("%w: (%q, %q)", ErrUnknownLexicalPair, s, phrase.Null)
		}
		weight *= w
	}
	return weight, nil
}

// PhraseTokens splits a materialized phrase string back into its
// whitespace-delimited tokens, inverting phrase.Materialize's join.
func PhraseTokens(s string) []string {
	return strings.Fields(s)
}
