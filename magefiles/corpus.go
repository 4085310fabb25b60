//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Corpus groups the targets that run the CLI over the data directories.
type Corpus mg.Namespace

func cli(args ...string) error {
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Samples writes gold-replay training samples from data/train.
func (Corpus) Samples() error {
	mg.Deps(Build)
	fmt.Println("[corpus] writing samples from data/train")
	return cli("samples", "--data-dir", "data/train", "--out-dir", "samples")
}

// Eval scores the parser against the gold trees in data/test.
func (Corpus) Eval() error {
	mg.Deps(Build)
	return cli("eval", "--data-dir", "data/test")
}

// Parse parses every .merge file in data/test into parses/ and stores the results.
func (Corpus) Parse() error {
	mg.Deps(Build)
	return cli("parse", "--data-dir", "data/test", "--out-dir", "parses", "--store")
}

// Ingest stores gold and predicted trees of data/test in the result database.
func (Corpus) Ingest() error {
	mg.Deps(Build)
	return cli("store", "ingest", "--data-dir", "data/test", "--parse")
}
