// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpus streams a word-aligned parallel corpus and accumulates the
// weighted phrase, source, target and lexical counters that feed probability
// estimation (C5).
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smtools/ppe/internal/align"
	"github.com/smtools/ppe/internal/phrase"
)

// ErrCorpusLengthMismatch is reported when the alignment, source and target
// streams (and, when present, the weight stream) reach EOF at different
// lines (spec.md §4.5, "Streaming guarantee").
var ErrCorpusLengthMismatch = errors.New("corpus: alignment, source and target files have unequal line counts")

// Counters holds the weighted phrase, single-side and lexical frequency
// accumulators built by a pass over the corpus.
type Counters struct {
	PhrasePair map[phrase.Pair]float64
	Source     map[string]float64
	Target     map[string]float64

	LexPair map[phrase.Pair]float64
	LexSrc  map[string]float64
	LexTgt  map[string]float64
}

// NewCounters returns an empty Counters ready for accumulation.
func NewCounters() *Counters {
	return &Counters{
		PhrasePair: make(map[phrase.Pair]float64),
		Source:     make(map[string]float64),
		Target:     make(map[string]float64),
		LexPair:    make(map[phrase.Pair]float64),
		LexSrc:     make(map[string]float64),
		LexTgt:     make(map[string]float64),
	}
}

// Add merges other into c, in place. Weighted counters are associative and
// commutative under addition (spec.md §5), so shards may be merged in any
// order.
func (c *Counters) Add(other *Counters) {
	for k, v := range other.PhrasePair {
		c.PhrasePair[k] += v
	}
	for k, v := range other.Source {
		c.Source[k] += v
	}
	for k, v := range other.Target {
		c.Target[k] += v
	}
	for k, v := range other.LexPair {
		c.LexPair[k] += v
	}
	for k, v := range other.LexSrc {
		c.LexSrc[k] += v
	}
	for k, v := range other.LexTgt {
		c.LexTgt[k] += v
	}
}

// Progress is called after every 1000th sentence pair is processed, with the
// 1-based index of the line just consumed. It is the aggregator's heartbeat
// hook; a nil Progress is a no-op.
type Progress func(line int)

// Aggregator drives a lockstep read of the alignment, source and target
// files (plus an optional sentence-weight file), feeding each sentence pair
// through phrase extraction and materialization and accumulating Counters.
type Aggregator struct {
	MaxPhraseLen int
	Progress     Progress

	// TrackDensity, when set, builds a phrase.Index over each sentence
	// pair's extracted rectangles and records the densest source
	// position's rectangle count in MaxRectDensity — a cheap diagnostic
	// of how combinatorially busy extraction got on this corpus.
	TrackDensity bool

	counters       *Counters
	MaxRectDensity int
}

// NewAggregator returns an Aggregator bounding extracted phrases to
// maxPhraseLen tokens (<= 0 means unbounded, spec.md §4.3).
func NewAggregator(maxPhraseLen int) *Aggregator {
	return &Aggregator{MaxPhraseLen: maxPhraseLen, counters: NewCounters()}
}

// Counters returns the counters accumulated so far.
func (g *Aggregator) Counters() *Counters { return g.counters }

// Run streams alignR, srcR and tgtR in lockstep, one sentence per line, and
// accumulates the resulting counters into g. weightR, when non-nil, supplies
// one decimal weight per line aligned 1:1 with the three corpora; a sentence
// with no corresponding weight line defaults to 1.0 only when weightR is
// nil — once a weight file is supplied it must cover every line, or
// ErrCorpusLengthMismatch is returned.
func (g *Aggregator) Run(alignR, srcR, tgtR, weightR io.Reader) error {
	as := bufio.NewScanner(alignR)
	ss := bufio.NewScanner(srcR)
	ts := bufio.NewScanner(tgtR)
	var ws *bufio.Scanner
	if weightR != nil {
		ws = bufio.NewScanner(weightR)
	}

	return g.run(as, ss, ts, ws, 0)
}

func (g *Aggregator) run(as, ss, ts, ws *bufio.Scanner, line int) error {
	for {
		aMore := as.Scan()
		sMore := ss.Scan()
		tMore := ts.Scan()
		var wMore bool
		if ws != nil {
			wMore = ws.Scan()
		}

		if !aMore && !sMore && !tMore && (ws == nil || !wMore) {
			break
		}
		if !aMore || !sMore || !tMore || (ws != nil && !wMore) {
			return fmt.Errorf("%w: at line %d", ErrCorpusLengthMismatch, line+1)
		}
		line++

		a, err := align.Parse(as.Text())
		if err != nil {
			return fmt.Errorf("corpus: line %d: %w", line, err)
		}
		srcTokens := strings.Fields(ss.Text())
		tgtTokens := strings.Fields(ts.Text())

		w := 1.0
		if ws != nil {
			w, err = strconv.ParseFloat(strings.TrimSpace(ws.Text()), 64)
			if err != nil {
				return fmt.Errorf("corpus: line %d: bad weight %q: %v", line, ws.Text(), err)
			}
		}

		if err := align.Validate(a, len(srcTokens), len(tgtTokens)); err != nil {
			return fmt.Errorf("corpus: line %d: %w", line, err)
		}
		g.accumulate(a, srcTokens, tgtTokens, w)

		if g.Progress != nil && line%1000 == 0 {
			g.Progress(line)
		}
	}
	if err := as.Err(); err != nil {
		return fmt.Errorf("corpus: reading alignments: %w", err)
	}
	if err := ss.Err(); err != nil {
		return fmt.Errorf("corpus: reading source: %w", err)
	}
	if err := ts.Err(); err != nil {
		return fmt.Errorf("corpus: reading target: %w", err)
	}
	if ws != nil {
		if err := ws.Err(); err != nil {
			return fmt.Errorf("corpus: reading weights: %w", err)
		}
	}
	return nil
}

func (g *Aggregator) accumulate(a align.Set, srcTokens, tgtTokens []string, w float64) {
	rects := phrase.Extract(a, len(srcTokens), len(tgtTokens), g.MaxPhraseLen)
	pairs := phrase.Materialize(rects, srcTokens, tgtTokens)

	if g.TrackDensity && len(rects) > 0 {
		idx := phrase.NewIndex(rects)
		if d := idx.MaxCoverage(len(srcTokens)); d > g.MaxRectDensity {
			g.MaxRectDensity = d
		}
	}

	for _, p := range pairs {
		g.counters.PhrasePair[p] += w
		g.counters.Source[p.Source] += w
		g.counters.Target[p.Target] += w
		if isSingleToken(p.Source) && isSingleToken(p.Target) {
			g.counters.LexPair[p] += w
			g.counters.LexSrc[p.Source] += w
			g.counters.LexTgt[p.Target] += w
		}
	}

	for _, p := range phrase.UnalignedPairs(a, srcTokens, tgtTokens) {
		g.counters.LexPair[p] += w
		g.counters.LexSrc[p.Source] += w
		g.counters.LexTgt[p.Target] += w
	}
}

func isSingleToken(s string) bool {
	return s != "" && !strings.Contains(s, " ")
}
