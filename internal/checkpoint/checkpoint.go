// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package checkpoint saves and restores accumulated corpus counters so a
// long aggregation pass can be resumed without re-reading the corpus
// (spec.md §6, "optional cache path for checkpointing counters").
//
// No domain library in this codebase's lineage addresses counter
// persistence — the nearest analogues all serialize domain-specific
// record types (GFF, FASTA, SAM) rather than plain maps — so this uses
// encoding/gob, the standard-library serializer idiomatic for persisting
// a Go program's own data between runs of the same program.
package checkpoint

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/smtools/ppe/internal/corpus"
)

// Save writes c to path as a gob-encoded checkpoint.
func Save(path string, c *corpus.Counters) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	defer f.Close()
	if err := Encode(f, c); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// Load reads a checkpoint previously written by Save from path.
func Load(path string) (*corpus.Counters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}
	return c, nil
}

// Encode gob-encodes c to w.
func Encode(w io.Writer, c *corpus.Counters) error {
	return gob.NewEncoder(w).Encode(c)
}

// Decode gob-decodes a Counters from r.
func Decode(r io.Reader) (*corpus.Counters, error) {
	c := corpus.NewCounters()
	if err := gob.NewDecoder(r).Decode(c); err != nil {
		return nil, err
	}
	return c, nil
}
