// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/discourse-engine/pkg/types"
)

func br(first, last int, prop types.Prop, rel string) types.Bracket {
	return types.Bracket{Span: types.Span{First: first, Last: last}, Prop: prop, Relation: rel}
}

var gold = []types.Bracket{
	br(1, 1, types.PropNucleus, "span"),
	br(2, 2, types.PropSatellite, "Elaboration"),
	br(3, 3, types.PropNucleus, "Joint"),
	br(4, 4, types.PropNucleus, "Joint"),
	br(3, 4, types.PropSatellite, "Elaboration"),
	br(1, 2, types.PropNucleus, "span"),
}

func TestComparePerfect(t *testing.T) {
	s := Compare(gold, gold)
	for _, g := range Granularities {
		assert.Equal(t, 6, s.Hits[g], g)
		assert.InDelta(t, 1.0, s.Precision(g), 1e-9, g)
	}
}

func TestCompareGranularities(t *testing.T) {
	pred := []types.Bracket{
		br(1, 1, types.PropNucleus, "span"),
		br(2, 2, types.PropNucleus, "Joint"),
		br(3, 3, types.PropNucleus, "Contrast"),
		br(4, 4, types.PropSatellite, "Joint"),
		br(2, 4, types.PropSatellite, "Elaboration"),
		br(1, 2, types.PropNucleus, "span"),
	}
	s := Compare(gold, pred)
	assert.Equal(t, 6, s.Gold)
	assert.Equal(t, 6, s.Pred)
	assert.Equal(t, 5, s.Hits[GranSpan])
	assert.Equal(t, 3, s.Hits[GranNuclearity])
	assert.Equal(t, 3, s.Hits[GranRelation])
	assert.Equal(t, 2, s.HitRel["span"])
	assert.Equal(t, 1, s.HitRel["Joint"])
	assert.Equal(t, 2, s.GoldRel["Elaboration"])
	assert.Equal(t, 2, s.PredRel["Joint"])
}

func TestMetricsSkipsEmptyGold(t *testing.T) {
	m := NewMetrics()
	assert.False(t, m.Add(Compare(nil, nil)))
	assert.Equal(t, 0, m.Docs())
	assert.Zero(t, m.Average(GranSpan))
	assert.Zero(t, m.Global(GranSpan))
}

func TestMetricsAverageAndGlobal(t *testing.T) {
	m := NewMetrics()
	require.True(t, m.Add(Compare(gold, gold)))

	// Second document: spans match, roles and relations are swapped.
	small := []types.Bracket{br(1, 1, types.PropNucleus, "span"), br(2, 2, types.PropSatellite, "Cause")}
	require.True(t, m.Add(Compare(small, []types.Bracket{br(1, 1, types.PropSatellite, "Cause"), br(2, 2, types.PropNucleus, "span")})))

	assert.Equal(t, 2, m.Docs())
	assert.InDelta(t, (1.0+1.0)/2, m.Average(GranSpan), 1e-9)
	assert.InDelta(t, (1.0+0.0)/2, m.Average(GranNuclearity), 1e-9)
	assert.InDelta(t, 8.0/8.0, m.Global(GranSpan), 1e-9)
	assert.InDelta(t, 6.0/8.0, m.Global(GranRelation), 1e-9)

	rels := map[string]RelationScore{}
	for _, r := range m.Relations() {
		rels[r.Relation] = r
	}
	cause := rels["Cause"]
	assert.Equal(t, 1, cause.Gold)
	assert.Zero(t, cause.Precision)
	assert.Zero(t, cause.Recall)
	assert.Zero(t, cause.F1)

	joint := rels["Joint"]
	assert.InDelta(t, 1.0, joint.F1, 1e-9)
}

func TestReport(t *testing.T) {
	m := NewMetrics()
	m.Add(Compare(gold, gold))

	var buf bytes.Buffer
	m.Report(&buf)
	out := buf.String()
	assert.Contains(t, out, "Documents evaluated: 1")
	assert.Contains(t, out, "Average precision on span level is 1.0000")
	assert.Contains(t, out, "Global precision on relation level is 1.0000")
	assert.Contains(t, out, "Elaboration")
	assert.Contains(t, out, "Joint")
}

func TestMarkdownAndHTML(t *testing.T) {
	m := NewMetrics()
	m.Add(Compare(gold, gold))

	md := m.Markdown()
	assert.Contains(t, md, "1 documents evaluated.")
	assert.Contains(t, md, "| span | 1.0000 | 1.0000 |")
	assert.Contains(t, md, "| Joint | 2 | 1.0000 | 1.0000 | 1.0000 |")

	var buf bytes.Buffer
	require.NoError(t, m.WriteHTML(&buf))
	html := buf.String()
	assert.Contains(t, html, "<h1>Discourse parsing evaluation</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>Elaboration</td>")
}

func TestMarkdownWithoutRelations(t *testing.T) {
	md := NewMetrics().Markdown()
	assert.Contains(t, md, "0 documents evaluated.")
	assert.NotContains(t, md, "## Relations")
}

func TestWriteBrackets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.brackets")
	require.NoError(t, WriteBrackets(path, gold[:2]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "((1, 1), 'Nucleus', 'span')\n((2, 2), 'Satellite', 'Elaboration')\n", string(data))
}
