// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus runs the discourse pipeline over directories of files:
// loading gold annotations with their token files, parsing batches of
// .merge files, evaluating against gold, and writing training samples.
package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/discourse-engine/internal/document"
	"github.com/pdiddy/discourse-engine/internal/eval"
	"github.com/pdiddy/discourse-engine/internal/parser"
	"github.com/pdiddy/discourse-engine/internal/tree"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

const (
	disExt      = ".dis"
	mergeExt    = ".merge"
	parseExt    = ".parse"
	bracketsExt = ".brackets"
)

// GoldDoc is a gold annotation bound to its document.
type GoldDoc struct {
	ID   string
	Path string
	Tree *tree.RstTree
}

// BatchSummary holds the counts of a batch run.
type BatchSummary struct {
	Done   int
	Failed int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int {
	return s.Done + s.Failed
}

// HasFailures reports whether any document failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ReadGold builds the binary gold tree of a .dis annotation. The token
// file is the .merge file with the same base name.
func ReadGold(disPath string) (*tree.RstTree, error) {
	mergePath := strings.TrimSuffix(disPath, disExt) + mergeExt
	doc, err := document.ReadMergeFile(mergePath)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(disPath)
	if err != nil {
		return nil, fmt.Errorf("reading annotation: %w", err)
	}
	return tree.FromAnnotation(string(src), doc)
}

// LoadGold reads every .dis file in dir together with its .merge file.
// A document that fails to load is reported on w and counted; it does
// not stop the batch.
func LoadGold(dir string, w io.Writer) ([]GoldDoc, BatchSummary, error) {
	paths, err := listFiles(dir, disExt)
	if err != nil {
		return nil, BatchSummary{}, err
	}

	var (
		docs    []GoldDoc
		summary BatchSummary
	)
	for _, path := range paths {
		id := document.DocID(path)
		t, err := ReadGold(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "loaded  %s (%d EDUs)\n", id, t.Doc.NumEDUs())
		docs = append(docs, GoldDoc{ID: id, Path: path, Tree: t})
		summary.Done++
	}
	return docs, summary, nil
}

// MergeFiles lists the .merge files in dir.
func MergeFiles(dir string) ([]string, error) {
	return listFiles(dir, mergeExt)
}

func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Result describes a built tree for storage.
func Result(id, source string, t *tree.RstTree) types.ParseResult {
	return types.ParseResult{
		DocID:    id,
		Source:   source,
		EDUCount: t.Doc.NumEDUs(),
		Parse:    t.Parse(),
		Brackets: t.Bracketing(),
	}
}

// ParseFiles parses each .merge file in paths with p and writes
// <id>.parse and <id>.brackets into outDir (next to the input when outDir
// is empty). It returns the results of the documents that parsed.
func ParseFiles(ctx context.Context, p *parser.Parser, paths []string, outDir string, w io.Writer) ([]types.ParseResult, BatchSummary, error) {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
		}
	}

	var (
		results []types.ParseResult
		summary BatchSummary
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}
		id := document.DocID(path)
		res, err := parseFile(ctx, p, path, outDir)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "parsed  %s (%d EDUs)\n", id, res.EDUCount)
		results = append(results, res)
		summary.Done++
	}
	return results, summary, nil
}

func parseFile(ctx context.Context, p *parser.Parser, path, outDir string) (types.ParseResult, error) {
	doc, err := document.ReadMergeFile(path)
	if err != nil {
		return types.ParseResult{}, err
	}
	t, err := p.Parse(ctx, doc)
	if err != nil {
		return types.ParseResult{}, err
	}
	res := Result(doc.ID, types.SourcePredicted, t)

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	base := filepath.Join(dir, doc.ID)
	if err := os.WriteFile(base+parseExt, []byte(res.Parse+"\n"), 0o644); err != nil {
		return types.ParseResult{}, fmt.Errorf("writing parse: %w", err)
	}
	if err := eval.WriteBrackets(base+bracketsExt, res.Brackets); err != nil {
		return types.ParseResult{}, err
	}
	return res, nil
}

// Evaluate parses the document of each gold tree with p and scores the
// prediction against the gold brackets.
func Evaluate(ctx context.Context, p *parser.Parser, docs []GoldDoc, w io.Writer) (*eval.Metrics, BatchSummary, error) {
	metrics := eval.NewMetrics()
	var summary BatchSummary
	for _, g := range docs {
		if err := ctx.Err(); err != nil {
			return metrics, summary, err
		}
		pred, err := p.Parse(ctx, g.Tree.Doc)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", g.ID, err)
			summary.Failed++
			continue
		}
		score := eval.Compare(g.Tree.Bracketing(), pred.Bracketing())
		if metrics.Add(score) {
			fmt.Fprintf(w, "scored  %s (span %.4f)\n", g.ID, score.Precision(eval.GranSpan))
		} else {
			fmt.Fprintf(w, "skipped %s (no brackets)\n", g.ID)
		}
		summary.Done++
	}
	return metrics, summary, nil
}
