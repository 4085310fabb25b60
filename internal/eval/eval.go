// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eval scores predicted discourse trees against gold trees by
// comparing their bracket tuples at span, nuclearity and relation
// granularity.
package eval

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pdiddy/discourse-engine/pkg/types"
)

// Granularity names the part of a bracket a comparison looks at.
type Granularity string

const (
	GranSpan       Granularity = "span"
	GranNuclearity Granularity = "nuclearity"
	GranRelation   Granularity = "relation"
)

// Granularities lists the comparison granularities in report order.
var Granularities = []Granularity{GranSpan, GranNuclearity, GranRelation}

// key projects a bracket onto the fields compared at g.
func key(b types.Bracket, g Granularity) string {
	switch g {
	case GranNuclearity:
		return b.Span.String() + "|" + string(b.Prop)
	case GranRelation:
		return b.Span.String() + "|" + b.Relation
	}
	return b.Span.String()
}

// Score is the comparison of one document's gold and predicted brackets.
type Score struct {
	Gold int
	Pred int

	// Hits counts gold brackets also found in the prediction, per
	// granularity.
	Hits map[Granularity]int

	// Relation-level counts keyed by relation label.
	GoldRel map[string]int
	PredRel map[string]int
	HitRel  map[string]int
}

// Compare scores pred against gold.
func Compare(gold, pred []types.Bracket) Score {
	s := Score{
		Gold:    len(gold),
		Pred:    len(pred),
		Hits:    make(map[Granularity]int, len(Granularities)),
		GoldRel: make(map[string]int),
		PredRel: make(map[string]int),
		HitRel:  make(map[string]int),
	}
	for _, g := range Granularities {
		predSet := make(map[string]bool, len(pred))
		for _, b := range pred {
			predSet[key(b, g)] = true
		}
		for _, b := range gold {
			if predSet[key(b, g)] {
				s.Hits[g]++
				if g == GranRelation {
					s.HitRel[b.Relation]++
				}
			}
		}
	}
	for _, b := range gold {
		s.GoldRel[b.Relation]++
	}
	for _, b := range pred {
		s.PredRel[b.Relation]++
	}
	return s
}

// Precision returns the fraction of gold brackets matched at g, or 0 when
// there are no gold brackets.
func (s Score) Precision(g Granularity) float64 {
	if s.Gold == 0 {
		return 0
	}
	return float64(s.Hits[g]) / float64(s.Gold)
}

// Metrics accumulates scores over a corpus.
type Metrics struct {
	docs      int
	gold      int
	hits      map[Granularity]int
	precision map[Granularity]float64
	goldRel   map[string]int
	predRel   map[string]int
	hitRel    map[string]int
}

// NewMetrics returns an empty accumulator.
func NewMetrics() *Metrics {
	return &Metrics{
		hits:      make(map[Granularity]int),
		precision: make(map[Granularity]float64),
		goldRel:   make(map[string]int),
		predRel:   make(map[string]int),
		hitRel:    make(map[string]int),
	}
}

// Add records one document. Documents without gold brackets (single-EDU
// trees) carry no information and are skipped; Add reports whether s was
// counted.
func (m *Metrics) Add(s Score) bool {
	if s.Gold == 0 {
		return false
	}
	m.docs++
	m.gold += s.Gold
	for _, g := range Granularities {
		m.hits[g] += s.Hits[g]
		m.precision[g] += s.Precision(g)
	}
	for r, n := range s.GoldRel {
		m.goldRel[r] += n
	}
	for r, n := range s.PredRel {
		m.predRel[r] += n
	}
	for r, n := range s.HitRel {
		m.hitRel[r] += n
	}
	return true
}

// Docs returns the number of documents counted.
func (m *Metrics) Docs() int { return m.docs }

// Average returns the mean per-document precision at g.
func (m *Metrics) Average(g Granularity) float64 {
	if m.docs == 0 {
		return 0
	}
	return m.precision[g] / float64(m.docs)
}

// Global returns corpus hits over corpus gold brackets at g.
func (m *Metrics) Global(g Granularity) float64 {
	if m.gold == 0 {
		return 0
	}
	return float64(m.hits[g]) / float64(m.gold)
}

// RelationScore is precision, recall and F1 for one relation label.
type RelationScore struct {
	Relation  string
	Gold      int
	Precision float64
	Recall    float64
	F1        float64
}

// Relations returns per-relation scores sorted by label.
func (m *Metrics) Relations() []RelationScore {
	labels := make([]string, 0, len(m.goldRel))
	for r := range m.goldRel {
		labels = append(labels, r)
	}
	sort.Strings(labels)

	out := make([]RelationScore, 0, len(labels))
	for _, r := range labels {
		rs := RelationScore{Relation: r, Gold: m.goldRel[r]}
		hit := float64(m.hitRel[r])
		if p := m.predRel[r]; p > 0 {
			rs.Precision = hit / float64(p)
		}
		rs.Recall = hit / float64(rs.Gold)
		if rs.Precision+rs.Recall > 0 {
			rs.F1 = 2 * rs.Precision * rs.Recall / (rs.Precision + rs.Recall)
		}
		out = append(out, rs)
	}
	return out
}

// Report writes the corpus summary to w.
func (m *Metrics) Report(w io.Writer) {
	fmt.Fprintf(w, "Documents evaluated: %d\n", m.docs)
	for _, g := range Granularities {
		fmt.Fprintf(w, "Average precision on %s level is %.4f\n", g, m.Average(g))
		fmt.Fprintf(w, "Global precision on %s level is %.4f\n", g, m.Global(g))
	}

	rels := m.Relations()
	if len(rels) == 0 {
		return
	}
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "%-24s  %6s  %9s  %6s  %6s\n", "Relation", "Gold", "Precision", "Recall", "F1")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, r := range rels {
		fmt.Fprintf(w, "%-24s  %6d  %9.4f  %6.4f  %6.4f\n", r.Relation, r.Gold, r.Precision, r.Recall, r.F1)
	}
}

// WriteBrackets writes one bracket tuple per line to path.
func WriteBrackets(path string, brackets []types.Bracket) error {
	var b strings.Builder
	for _, br := range brackets {
		b.WriteString(br.String())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing brackets %s: %w", path, err)
	}
	return nil
}
