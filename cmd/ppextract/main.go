// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ppextract streams a word-aligned parallel corpus, extracts consistent
// phrase pairs and writes either an augmented Moses-style phrase table or
// a simple tuple-literal extract suitable for coverage evaluation.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/smtools/ppe/internal/checkpoint"
	"github.com/smtools/ppe/internal/corpus"
	"github.com/smtools/ppe/internal/prob"
	"github.com/smtools/ppe/internal/table"
)

const (
	exitOK = iota
	exitIOFailure
	exitMalformedInput
	exitInconsistentCounts
)

var (
	alignFile  = flag.String("align", "", "alignment file (required)")
	srcFile    = flag.String("l1", "", "source language sentence file (required)")
	tgtFile    = flag.String("l2", "", "target language sentence file (required)")
	weightFile = flag.String("weights", "", "optional sentence-weight file")
	cacheFile  = flag.String("cache", "", "optional counter checkpoint path")
	out        = flag.String("out", "", "output prefix (required)")
	maxLen     = flag.Int("L", 7, "maximum phrase length (<=0 means unbounded)")
	moses      = flag.String("moses", "", "base phrase table to augment with scores (moses mode)")
	s2tFile    = flag.String("lex-s2t", "", "source->target lexical table (required with -moses)")
	t2sFile    = flag.String("lex-t2s", "", "target->source lexical table (required with -moses)")
	simple     = flag.Bool("simple", false, "write a (pair, joint, P(s|t), P(t|s)) tuple-literal extract instead of a phrase table")

	errFile = flag.String("err", "", "redirect log output to this file")
)

func main() {
	flag.Parse()
	if *alignFile == "" || *srcFile == "" || *tgtFile == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "ppextract: -align, -l1, -l2 and -out are required")
		flag.Usage()
		os.Exit(exitIOFailure)
	}
	if !*simple && *moses == "" {
		fmt.Fprintln(os.Stderr, "ppextract: one of -simple or -moses is required")
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

	counters, err := aggregate()
	if err != nil {
		log.Printf("failed to aggregate corpus: %v", err)
		os.Exit(exitCode(err))
	}

	if *cacheFile != "" {
		log.Printf("writing checkpoint to %q", *cacheFile)
		if err := checkpoint.Save(*cacheFile, counters); err != nil {
			log.Printf("failed to write checkpoint: %v", err)
			os.Exit(exitIOFailure)
		}
	}

	if *simple {
		if err := writeSimpleExtract(counters); err != nil {
			log.Printf("failed to write extract: %v", err)
			os.Exit(exitCode(err))
		}
		return
	}
	if err := writeMosesTable(counters); err != nil {
		log.Printf("failed to write phrase table: %v", err)
		os.Exit(exitCode(err))
	}
}

func aggregate() (*corpus.Counters, error) {
	a, err := os.Open(*alignFile)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	s, err := os.Open(*srcFile)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	t, err := os.Open(*tgtFile)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	var w *os.File
	if *weightFile != "" {
		w, err = os.Open(*weightFile)
		if err != nil {
			return nil, err
		}
		defer w.Close()
	}

	agg := corpus.NewAggregator(*maxLen)
	agg.Progress = func(n int) { log.Printf("processed %d sentence pairs", n) }

	if w == nil {
		if err := agg.Run(a, s, t, nil); err != nil {
			return nil, err
		}
	} else if err := agg.Run(a, s, t, w); err != nil {
		return nil, err
	}
	return agg.Counters(), nil
}

func writeSimpleExtract(c *corpus.Counters) error {
	f, err := os.Create(*out + ".extract.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	var recs []table.ExtractRecord
	for p := range c.PhrasePair {
		joint, err := prob.Joint(c, p)
		if err != nil {
			return err
		}
		pSGivenT, pTGivenS, err := prob.Conditional(c, p)
		if err != nil {
			return err
		}
		recs = append(recs, table.ExtractRecord{
			Pair:     p,
			Joint:    joint,
			PSGivenT: pSGivenT,
			PTGivenS: pTGivenS,
		})
	}
	return table.WriteExtractRecords(f, recs)
}

func writeMosesTable(c *corpus.Counters) error {
	if *s2tFile == "" || *t2sFile == "" {
		return errors.New("ppextract: -moses requires -lex-s2t and -lex-t2s")
	}
	mf, err := os.Open(*moses)
	if err != nil {
		return err
	}
	defer mf.Close()
	recs, err := table.ReadRecords(mf)
	if err != nil {
		return err
	}

	s2tf, err := os.Open(*s2tFile)
	if err != nil {
		return err
	}
	defer s2tf.Close()
	s2t, err := table.ReadLexTable(s2tf)
	if err != nil {
		return err
	}

	t2sf, err := os.Open(*t2sFile)
	if err != nil {
		return err
	}
	defer t2sf.Close()
	t2s, err := table.ReadLexTable(t2sf)
	if err != nil {
		return err
	}

	outFile, err := os.Create(*out + ".moses.txt")
	if err != nil {
		return err
	}
	defer outFile.Close()

	for _, rec := range recs {
		sc, err := table.Score(c, rec, s2t, t2s)
		if err != nil {
			return err
		}
		if err := table.WriteRecord(outFile, rec, sc); err != nil {
			return err
		}
	}
	return nil
}

// exitCode maps an error to the exit code scheme of spec.md §6.
func exitCode(err error) int {
	switch {
	case errors.Is(err, prob.ErrInconsistentCounts), errors.Is(err, prob.ErrUnknownLexicalPair):
		return exitInconsistentCounts
	case errors.Is(err, corpus.ErrCorpusLengthMismatch):
		return exitMalformedInput
	default:
		if isOSError(err) {
			return exitIOFailure
		}
		return exitMalformedInput
	}
}

func isOSError(err error) bool {
	var pathErr *os.PathError
	return errors.As(err, &pathErr)
}
