// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ppcoverage measures how much of a held-out phrase-pair set can be
// reconstructed from a training phrase-pair table by concatenation and
// reordering of at most a bounded number of pieces.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/smtools/ppe/internal/coverage"
	"github.com/smtools/ppe/internal/phrase"
	"github.com/smtools/ppe/internal/table"
)

const (
	exitOK = iota
	exitIOFailure
	exitMalformedInput
)

var (
	trainFile    = flag.String("train", "", "training phrase-pair extract file (required)")
	heldOutFile  = flag.String("held-out", "", "held-out phrase-pair extract file (required)")
	out          = flag.String("out", "", "output prefix (required)")
	maxConcats   = flag.String("max-concat", "0,1,2", "comma-separated list of max_concat values to evaluate")
	useMatching  = flag.Bool("matching", false, "use bipartite-matching reachability instead of brute-force permutation search")
	curve        = flag.Bool("curve", false, "also render a coverage-vs-max_concat plot")
	errFile      = flag.String("err", "", "redirect log output to this file")
)

func main() {
	flag.Parse()
	if *trainFile == "" || *heldOutFile == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "ppcoverage: -train, -held-out and -out are required")
		flag.Usage()
		os.Exit(exitIOFailure)
	}

	if *errFile != "" {
		w, err := os.Create(*errFile)
		if err != nil {
			log.Fatalf("failed to create log file: %v", err)
		}
		defer w.Close()
		log.SetOutput(w)
	}

	concats, err := parseMaxConcats(*maxConcats)
	if err != nil {
		log.Printf("bad -max-concat list: %v", err)
		os.Exit(exitMalformedInput)
	}

	tf, err := os.Open(*trainFile)
	if err != nil {
		log.Printf("failed to open %q: %v", *trainFile, err)
		os.Exit(exitIOFailure)
	}
	defer tf.Close()
	trainRecs, err := table.ReadExtractRecords(tf)
	if err != nil {
		log.Printf("failed to read training table: %v", err)
		os.Exit(exitMalformedInput)
	}

	hf, err := os.Open(*heldOutFile)
	if err != nil {
		log.Printf("failed to open %q: %v", *heldOutFile, err)
		os.Exit(exitIOFailure)
	}
	defer hf.Close()
	heldOutRecs, err := table.ReadExtractRecords(hf)
	if err != nil {
		log.Printf("failed to read held-out set: %v", err)
		os.Exit(exitMalformedInput)
	}

	trainTable := coverage.NewTable(pairsOf(trainRecs))
	heldOut := pairsOf(heldOutRecs)

	ev := &coverage.Evaluator{Table: trainTable, UseMatching: *useMatching}

	log.Printf("evaluating coverage over %d held-out pairs at max_concat in %v", len(heldOut), concats)
	for _, mc := range concats {
		results, cov := ev.Evaluate(heldOut, mc)
		log.Printf("max_concat=%d coverage=%.4f", mc, cov)

		covF, err := os.Create(fmt.Sprintf("%s.covered.%d.txt", *out, mc))
		if err != nil {
			log.Printf("failed to create covered report: %v", err)
			os.Exit(exitIOFailure)
		}
		uncovF, err := os.Create(fmt.Sprintf("%s.uncovered.%d.txt", *out, mc))
		if err != nil {
			log.Printf("failed to create uncovered report: %v", err)
			os.Exit(exitIOFailure)
		}
		err = coverage.WriteReport(covF, uncovF, results)
		covF.Close()
		uncovF.Close()
		if err != nil {
			log.Printf("failed to write coverage report: %v", err)
			os.Exit(exitIOFailure)
		}
	}

	if *curve {
		points := ev.Curve(heldOut, concats)
		tsv, err := os.Create(*out + ".curve.tsv")
		if err != nil {
			log.Printf("failed to create curve file: %v", err)
			os.Exit(exitIOFailure)
		}
		err = coverage.WriteCurveTSV(tsv, points)
		tsv.Close()
		if err != nil {
			log.Printf("failed to write curve tsv: %v", err)
			os.Exit(exitIOFailure)
		}
		if err := coverage.PlotCurve(points, *out+".curve.png", 15*vg.Centimeter, 10*vg.Centimeter); err != nil {
			log.Printf("failed to render curve plot: %v", err)
			os.Exit(exitIOFailure)
		}
	}
}

func parseMaxConcats(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	vals := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		vals = append(vals, n)
	}
	return vals, nil
}

func pairsOf(recs []table.ExtractRecord) []phrase.Pair {
	pairs := make([]phrase.Pair, len(recs))
	for i, r := range recs {
		pairs[i] = r.Pair
	}
	return pairs
}
