// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/discourse-engine/internal/tree"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

const goldAnnotation = `( Root (span 1 5)
  ( Satellite (leaf 1) (rel2par attribution) (text _!Officials said_!) )
  ( Nucleus (span 2 5) (rel2par span)
    ( Nucleus (span 2 3) (rel2par span)
      ( Nucleus (leaf 2) (rel2par span) (text _!the bridge will close_!) )
      ( Satellite (leaf 3) (rel2par purpose) (text _!to allow repairs ._!) ) )
    ( Satellite (span 4 5) (rel2par elaboration-additional)
      ( Nucleus (leaf 4) (rel2par Sequence) (text _!Work starts Monday_!) )
      ( Nucleus (leaf 5) (rel2par Sequence) (text _!and ends Friday ._!) ) ) ) )`

func goldTree(t *testing.T) *tree.RstTree {
	t.Helper()
	doc := buildDoc(1, []string{
		"Officials said",
		"the bridge will close",
		"to allow repairs .",
		"Work starts Monday",
		"and ends Friday .",
	}, []int{0, 0, 0, 1, 1})
	tr, err := tree.FromAnnotation(goldAnnotation, doc)
	require.NoError(t, err)
	return tr
}

func TestGoldActions(t *testing.T) {
	actions, err := GoldActions(goldTree(t))
	require.NoError(t, err)

	got := make([]string, len(actions))
	for i, a := range actions {
		got[i] = a.String()
	}
	assert.Equal(t, []string{
		"Shift",
		"Shift", "Shift", "Reduce-NS",
		"Shift", "Shift", "Reduce-NN",
		"Reduce-NS",
		"Reduce-SN",
	}, got)
}

func TestTeachReconstructsGoldTree(t *testing.T) {
	gold := goldTree(t)
	goldLeaves := gold.Leaves()
	goldParents := make([]*tree.SpanNode, len(goldLeaves))
	for i, l := range goldLeaves {
		goldParents[i] = l.Parent
	}

	var steps int
	replayed, err := Teach(gold, nil, func(s Snapshot, a types.Action) error {
		assert.Len(t, s.History, steps)
		steps++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2*gold.Doc.NumEDUs()-1, steps)

	want, got := gold.Postorder(), replayed.Postorder()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Span, got[i].Span)
		assert.Equal(t, want[i].Form, got[i].Form)
		assert.Equal(t, want[i].Prop, got[i].Prop)
		assert.Equal(t, want[i].Relation, got[i].Relation, want[i].String())
		assert.Equal(t, want[i].Level, got[i].Level)
		assert.NotSame(t, want[i], got[i])
	}
	assert.Equal(t, gold.Bracketing(), replayed.Bracketing())

	for i, l := range gold.Leaves() {
		assert.Same(t, goldParents[i], l.Parent, "gold tree must not be rewired")
	}
}

func TestActionSamples(t *testing.T) {
	gold := goldTree(t)
	samples, err := ActionSamples(gold, types.ClusterTable{"bridge": "1010"})
	require.NoError(t, err)
	require.Len(t, samples, 9)

	first := samples[0]
	assert.Equal(t, types.Shift(), first.Action)
	assert.Empty(t, first.Snapshot.Stack)
	assert.Len(t, first.Snapshot.Queue, 5)
	assert.Equal(t, "1010", first.Snapshot.Clusters.Lookup("bridge"))

	// Before the first Reduce-NS: leaves 1..3 shifted.
	r := samples[3]
	assert.Equal(t, types.Reduce(types.FormNS), r.Action)
	rec := r.Record("wsj_0600", 3)
	assert.Equal(t, []types.Span{{First: 1, Last: 1}, {First: 2, Last: 2}, {First: 3, Last: 3}}, rec.Stack)
	assert.Equal(t, []types.Span{{First: 4, Last: 4}, {First: 5, Last: 5}}, rec.Queue)
	assert.Equal(t, []string{"Shift", "Shift", "Shift"}, rec.History)
	assert.Equal(t, "Reduce-NS", rec.Action)
	assert.Equal(t, "wsj_0600", rec.DocID)

	last := samples[len(samples)-1]
	assert.Equal(t, types.Reduce(types.FormSN), last.Action)
	assert.Len(t, last.Snapshot.Stack, 2)
	assert.Empty(t, last.Snapshot.Queue)
}

func TestActionSamplesKeepPreActionState(t *testing.T) {
	samples, err := ActionSamples(goldTree(t), nil)
	require.NoError(t, err)
	require.Len(t, samples, 9)

	// Before the first Reduce-NS the three leaves on the stack have no
	// roles yet, and nothing carries a gold relation.
	r := samples[3].Snapshot
	require.Len(t, r.Stack, 3)
	for _, n := range append(r.Stack, r.Queue...) {
		assert.Equal(t, types.PropNone, n.Prop, n.Span.String())
		assert.Empty(t, n.Relation, n.Span.String())
		assert.Empty(t, n.RawText, n.Span.String())
		assert.Nil(t, n.Parent, n.Span.String())
	}

	// Before the final Reduce-SN the reduced (2, 5) node shows only what
	// earlier actions produced.
	last := samples[8].Snapshot
	require.Len(t, last.Stack, 2)
	left, right := last.Stack[0], last.Stack[1]
	assert.Equal(t, types.PropNone, left.Prop)
	assert.Equal(t, types.PropNone, right.Prop)
	assert.Equal(t, types.FormNone, right.Form)
	assert.Empty(t, right.Relation)
	assert.Nil(t, right.Parent)
	assert.Equal(t, types.Span{First: 2, Last: 5}, right.Span)
	assert.Equal(t, types.PropNucleus, right.Left.Prop)
	assert.Equal(t, types.PropSatellite, right.Right.Prop)
	assert.Empty(t, right.Left.Relation)
	assert.Same(t, right, right.Left.Parent)

	for i := range samples {
		for j := range samples[i].Snapshot.Stack {
			for k := i + 1; k < len(samples); k++ {
				for _, other := range samples[k].Snapshot.Stack {
					assert.NotSame(t, samples[i].Snapshot.Stack[j], other)
				}
			}
		}
	}
}

func TestRelationSamples(t *testing.T) {
	gold := goldTree(t)

	level0 := RelationSamples(gold, 0)
	require.Len(t, level0, 2)
	assert.Equal(t, types.Span{First: 2, Last: 3}, level0[0].Node.Span)
	assert.Equal(t, "Enablement", level0[0].Relation)
	assert.Equal(t, types.Span{First: 4, Last: 5}, level0[1].Node.Span)
	assert.Equal(t, "Temporal", level0[1].Relation)

	level1 := RelationSamples(gold, 1)
	got := map[types.Span]string{}
	for _, s := range level1 {
		got[s.Node.Span] = s.Relation
	}
	assert.Equal(t, map[types.Span]string{
		{First: 2, Last: 5}: "Elaboration",
		{First: 1, Last: 5}: "Attribution",
	}, got)

	rec := level1[0].Record("wsj_0600")
	assert.Equal(t, types.FormNS, rec.Form)
	assert.Equal(t, 1, rec.Level)

	assert.Empty(t, RelationSamples(gold, 2))
}
