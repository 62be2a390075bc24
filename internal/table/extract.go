// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smtools/ppe/internal/phrase"
)

// ExtractRecord is one scored phrase pair as produced for coverage
// evaluation input (spec.md §6, "Output — phrase-pair extract for
// coverage"): the pair itself, its joint probability, and both
// conditional probabilities.
type ExtractRecord struct {
	Pair             phrase.Pair
	Joint            float64
	PSGivenT, PTGivenS float64
}

// WriteExtractRecords writes recs as machine-readable tuple literals, one
// per line: (("s", "t"), joint, P(s|t), P(t|s)).
func WriteExtractRecords(w io.Writer, recs []ExtractRecord) error {
	for _, r := range recs {
		_, err := fmt.Fprintf(w, "((%q, %q), %g, %g, %g)\n",
			r.Pair.Source, r.Pair.Target, r.Joint, r.PSGivenT, r.PTGivenS)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadExtractRecords parses lines written by WriteExtractRecords.
func ReadExtractRecords(r io.Reader) ([]ExtractRecord, error) {
	sc := bufio.NewScanner(r)
	var out []ExtractRecord
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rec, err := parseExtractLine(line)
		if err != nil {
			return nil, fmt.Errorf("table: %w: %q", err, line)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	return out, nil
}

// parseExtractLine parses "((\"s\", \"t\"), joint, pst, pts)" without a
// full tuple-literal grammar: it relies on the fixed, self-written shape
// rather than accepting arbitrary Python literals.
func parseExtractLine(line string) (ExtractRecord, error) {
	line = strings.TrimPrefix(line, "(")
	line = strings.TrimSuffix(line, ")")
	// line is now: ("s", "t"), joint, pst, pts
	idx := strings.Index(line, ")")
	if idx < 0 || !strings.HasPrefix(line, "(") {
		return ExtractRecord{}, fmt.Errorf("%w: missing pair parens", ErrMalformedRecord)
	}
	pairPart := line[:idx+1]
	rest := strings.TrimPrefix(line[idx+1:], ",")

	s, t, err := parsePair(pairPart)
	if err != nil {
		return ExtractRecord{}, err
	}

	nums := strings.Split(rest, ",")
	if len(nums) != 3 {
		return ExtractRecord{}, fmt.Errorf("%w: expected 3 trailing numbers", ErrMalformedRecord)
	}
	joint, err := strconv.ParseFloat(strings.TrimSpace(nums[0]), 64)
	if err != nil {
		return ExtractRecord{}, err
	}
	pst, err := strconv.ParseFloat(strings.TrimSpace(nums[1]), 64)
	if err != nil {
		return ExtractRecord{}, err
	}
	pts, err := strconv.ParseFloat(strings.TrimSpace(nums[2]), 64)
	if err != nil {
		return ExtractRecord{}, err
	}
	return ExtractRecord{
		Pair:     phrase.Pair{Source: s, Target: t},
		Joint:    joint,
		PSGivenT: pst,
		PTGivenS: pts,
	}, nil
}

func parsePair(s string) (src, tgt string, err error) {
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.SplitN(s, ", ", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: malformed pair %q", ErrMalformedRecord, s)
	}
	src, err = strconv.Unquote(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	tgt, err = strconv.Unquote(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return src, tgt, nil
}
