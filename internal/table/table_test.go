// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/smtools/ppe/internal/corpus"
	"github.com/smtools/ppe/internal/phrase"
	"github.com/smtools/ppe/internal/prob"
)

const tol = 1e-9

func TestReadRecords(t *testing.T) {
	in := "a b ||| x y ||| 0.5 ||| 0-0 1-1 ||| extra\n\n"
	recs, err := ReadRecords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("ReadRecords: got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.Source != "a b" || r.Target != "x y" {
		t.Errorf("ReadRecords: got (%q, %q)", r.Source, r.Target)
	}
	if len(r.Trailing) != 1 || r.Trailing[0] != "extra" {
		t.Errorf("ReadRecords: Trailing = %v, want [extra]", r.Trailing)
	}
}

func TestReadRecordsMalformed(t *testing.T) {
	if _, err := ReadRecords(strings.NewReader("a ||| b\n")); err == nil {
		t.Fatal("ReadRecords: expected ErrMalformedRecord, got nil")
	}
}

func TestScoreAndWriteRecord(t *testing.T) {
	c := corpus.NewCounters()
	p := phrase.Pair{Source: "a", Target: "x"}
	c.PhrasePair[p] = 1
	c.Source["a"] = 1
	c.Target["x"] = 1

	s2t := prob.LexTable{phrase.Pair{Source: "a", Target: "x"}: 1}
	t2s := prob.LexTable{phrase.Pair{Source: "x", Target: "a"}: 1}

	rec, err := ReadRecords(strings.NewReader("a ||| x ||| 0.0 ||| 0-0\n"))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	sc, err := Score(c, rec[0], s2t, t2s)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !floats.EqualWithinAbs(sc.PSGivenT, 1, tol) {
		t.Errorf("PSGivenT = %v, want 1", sc.PSGivenT)
	}
	if !floats.EqualWithinAbs(sc.LexSGivenT, 1, tol) {
		t.Errorf("LexSGivenT = %v, want 1", sc.LexSGivenT)
	}

	var buf bytes.Buffer
	if err := WriteRecord(&buf, rec[0], sc); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "2.718") {
		t.Errorf("WriteRecord output missing phrase penalty: %q", got)
	}
	if !strings.HasPrefix(got, "a ||| x |||") {
		t.Errorf("WriteRecord output = %q, want prefix %q", got, "a ||| x |||")
	}
}

func TestReadLexTable(t *testing.T) {
	in := "a x 0.5\nb y 0.25\n"
	lt, err := ReadLexTable(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLexTable: %v", err)
	}
	if got, ok := lt.Lookup("a", "x"); !ok || !floats.EqualWithinAbs(got, 0.5, tol) {
		t.Errorf("Lookup(a,x) = (%v, %v), want (0.5, true)", got, ok)
	}
}
