// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document reads the pre-processed inputs of the parser: .merge
// token files produced by linguistic pre-processing, and Brown cluster
// tables.
package document

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/discourse-engine/pkg/types"
)

// mergeColumns is the number of tab-separated fields on a token line:
// sentence, token, form, lemma, upos, xpos, deprel, head, two unused
// columns, EDU, paragraph.
const mergeColumns = 12

// ReadMerge reads a .merge token stream into a Document. Blank lines are
// skipped; any other malformed line is an error carrying its line number.
func ReadMerge(id string, r io.Reader) (*types.Document, error) {
	var tokens []types.Token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		tok, err := parseMergeLine(text)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", id, line, err)
		}
		tokens = append(tokens, tok)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", id, err)
	}
	return types.NewDocument(id, tokens), nil
}

// ReadMergeFile reads a .merge file. The document ID is the file name
// without its extension.
func ReadMergeFile(path string) (*types.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening merge file: %w", err)
	}
	defer f.Close()
	return ReadMerge(DocID(path), f)
}

// DocID derives a document identifier from a file path.
func DocID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func parseMergeLine(line string) (types.Token, error) {
	f := strings.Split(line, "\t")
	if len(f) != mergeColumns {
		return types.Token{}, fmt.Errorf("expected %d tab-separated columns, got %d", mergeColumns, len(f))
	}
	ints := make(map[string]int, 5)
	for _, c := range []struct {
		name string
		col  int
	}{
		{"sentence index", 0},
		{"token index", 1},
		{"head", 7},
		{"EDU index", 10},
		{"paragraph index", 11},
	} {
		v, err := strconv.Atoi(f[c.col])
		if err != nil {
			return types.Token{}, fmt.Errorf("%s %q is not an integer", c.name, f[c.col])
		}
		ints[c.name] = v
	}
	return types.Token{
		Position:  ints["token index"],
		Form:      f[2],
		Lemma:     f[3],
		POS:       f[4],
		Tag:       f[5],
		DepLabel:  f[6],
		Head:      ints["head"],
		EDU:       ints["EDU index"],
		Sentence:  ints["sentence index"],
		Paragraph: ints["paragraph index"],
	}, nil
}
