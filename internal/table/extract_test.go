// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bytes"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/smtools/ppe/internal/phrase"
)

func TestExtractRecordRoundTrip(t *testing.T) {
	recs := []ExtractRecord{
		{Pair: phrase.Pair{Source: "a b", Target: "x y"}, Joint: 0.125, PSGivenT: 0.5, PTGivenS: 0.25},
	}
	var buf bytes.Buffer
	if err := WriteExtractRecords(&buf, recs); err != nil {
		t.Fatalf("WriteExtractRecords: %v", err)
	}
	got, err := ReadExtractRecords(&buf)
	if err != nil {
		t.Fatalf("ReadExtractRecords: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadExtractRecords: got %d records, want 1", len(got))
	}
	if got[0].Pair != recs[0].Pair {
		t.Errorf("Pair = %v, want %v", got[0].Pair, recs[0].Pair)
	}
	if !floats.EqualWithinAbs(got[0].Joint, 0.125, tol) {
		t.Errorf("Joint = %v, want 0.125", got[0].Joint)
	}
}
