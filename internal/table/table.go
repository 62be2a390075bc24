// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table reads and rewrites phrase tables (C7) and reads directional
// lexical translation tables (C10).
package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smtools/ppe/internal/align"
	"github.com/smtools/ppe/internal/corpus"
	"github.com/smtools/ppe/internal/phrase"
	"github.com/smtools/ppe/internal/prob"
)

// PhrasePenalty is the constant "phrase penalty" score required by
// downstream decoders (spec.md §4.7).
const PhrasePenalty = 2.718

// ErrMalformedRecord is returned for a phrase-table line that does not have
// at least the four ` ||| `-delimited fields this package requires, and for
// an extract line that ReadExtractRecords cannot parse.
var ErrMalformedRecord = errors.New("table: malformed phrase-table record")

// Record is one row of a base phrase table: a source/target phrase pair, an
// internal word alignment, and any trailing fields carried through
// unmodified (spec.md §6, "Input — base phrase table").
type Record struct {
	Source, Target string
	Align          align.Set
	Trailing       []string
}

// ReadRecords parses base phrase-table records of the form
// "s ||| t ||| (unused) ||| α ||| ...".
func ReadRecords(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	var out []Record
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, " ||| ")
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
		}
		a, err := align.Parse(fields[3])
		if err != nil {
			return nil, fmt.Errorf("table: bad alignment field %q: %w", fields[3], err)
		}
		out = append(out, Record{
			Source:   fields[0],
			Target:   fields[1],
			Align:    a,
			Trailing: fields[4:],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	return out, nil
}

// Scores holds the four phrase-pair scores C7 inserts into a rewritten
// phrase-table record; WriteRecord appends the constant PhrasePenalty
// after them.
type Scores struct {
	PSGivenT, LexSGivenT float64
	PTGivenS, LexTGivenS float64
}

// Score computes a record's four phrase-table scores from the corpus
// counters and the two directional lexical tables (spec.md §4.7).
func Score(c *corpus.Counters, rec Record, s2t, t2s prob.LexTable) (Scores, error) {
	p := phrase.Pair{Source: rec.Source, Target: rec.Target}
	pSGivenT, pTGivenS, err := prob.Conditional(c, p)
	if err != nil {
		return Scores{}, err
	}
	srcTokens := prob.PhraseTokens(rec.Source)
	tgtTokens := prob.PhraseTokens(rec.Target)

	lexSGivenT, err := prob.LexicalWeight(tgtTokens, srcTokens, flip(rec.Align), t2s)
	if err != nil {
		return Scores{}, err
	}
	lexTGivenS, err := prob.LexicalWeight(srcTokens, tgtTokens, rec.Align, s2t)
	if err != nil {
		return Scores{}, err
	}
	return Scores{
		PSGivenT:   pSGivenT,
		LexSGivenT: lexSGivenT,
		PTGivenS:   pTGivenS,
		LexTGivenS: lexTGivenS,
	}, nil
}

// flip reverses the (i,j) orientation of an internal word alignment, for
// computing the target->source lexical weight from the same record.
func flip(a align.Set) align.Set {
	out := make(align.Set, len(a))
	for p := range a {
		out[align.Point{I: p.J, J: p.I}] = struct{}{}
	}
	return out
}

// WriteRecord appends the four C6 scores and the constant phrase penalty to
// rec and writes it in the form
// "s ||| t ||| P(s|t) lex(s|t) P(t|s) lex(t|s) 2.718 ||| α ||| ...".
func WriteRecord(w io.Writer, rec Record, sc Scores) error {
	fields := []string{
		rec.Source,
		rec.Target,
		fmt.Sprintf("%g %g %g %g %g", sc.PSGivenT, sc.LexSGivenT, sc.PTGivenS, sc.LexTGivenS, PhrasePenalty),
		rec.Align.String(),
	}
	fields = append(fields, rec.Trailing...)
	_, err := fmt.Fprintln(w, strings.Join(fields, " ||| "))
	return err
}

// ReadLexTable parses a directional lexical translation table of
// whitespace-delimited "src tgt prob" records (spec.md §6, "Input —
// lexical table").
func ReadLexTable(r io.Reader) (prob.LexTable, error) {
	sc := bufio.NewScanner(r)
	t := make(prob.LexTable)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("table: bad lexical table record %q", line)
		}
		p, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("table: bad probability %q: %w", fields[2], err)
		}
		t[phrase.Pair{Source: fields[0], Target: fields[1]}] = p
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	return t, nil
}
