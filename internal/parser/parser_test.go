// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/discourse-engine/internal/tree"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

// --- test helpers ---

func buildDoc(first int, edus []string, sentences []int) *types.Document {
	var toks []types.Token
	for i, e := range edus {
		for _, w := range strings.Fields(e) {
			toks = append(toks, types.Token{Form: w, EDU: first + i, Sentence: sentences[i]})
		}
	}
	return types.NewDocument("doc", toks)
}

// listOracle replays fixed actions, each ranked above the full vocabulary.
type listOracle struct {
	actions []types.Action
}

func (o *listOracle) Rank(_ context.Context, s Snapshot) ([]types.ScoredAction, error) {
	out := []types.ScoredAction{{Action: o.actions[len(s.History)], Score: 1}}
	for _, a := range types.Vocabulary {
		out = append(out, types.ScoredAction{Action: a, Score: 0})
	}
	return out, nil
}

// randomOracle ranks the vocabulary in a random order.
type randomOracle struct {
	rng   *rand.Rand
	calls int
}

func (o *randomOracle) Rank(_ context.Context, _ Snapshot) ([]types.ScoredAction, error) {
	o.calls++
	out := make([]types.ScoredAction, len(types.Vocabulary))
	for i, a := range types.Vocabulary {
		out[i] = types.ScoredAction{Action: a, Score: o.rng.Float64()}
	}
	o.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

type rankFunc func(context.Context, Snapshot) ([]types.ScoredAction, error)

func (f rankFunc) Rank(ctx context.Context, s Snapshot) ([]types.ScoredAction, error) {
	return f(ctx, s)
}

// levelRelations labels by level: L0, L1, L2.
type levelRelations struct{}

func (levelRelations) Relation(_ context.Context, _ *tree.SpanNode, _ *tree.RstTree, level int, _ types.ClusterTable) (string, error) {
	return fmt.Sprintf("L%d", level), nil
}

func threeEDUDoc() *types.Document {
	return buildDoc(0, []string{"The sky is blue .", "Birds fly south .", "It is cold ."}, []int{0, 1, 2})
}

var exampleActions = []types.Action{
	types.Shift(), types.Shift(), types.Reduce(types.FormNS), types.Shift(), types.Reduce(types.FormSN),
}

// --- state machine ---

func TestStateLegality(t *testing.T) {
	s := NewDocumentState(threeEDUDoc())

	assert.True(t, s.Allowed(types.Shift()))
	assert.False(t, s.Allowed(types.Reduce(types.FormNN)))
	err := s.Apply(types.Reduce(types.FormNS))
	assert.ErrorIs(t, err, ErrIllegalAction)

	require.NoError(t, s.Apply(types.Shift()))
	assert.False(t, s.Allowed(types.Reduce(types.FormNS)), "one node on the stack")
	require.NoError(t, s.Apply(types.Shift()))
	assert.True(t, s.Allowed(types.Reduce(types.FormSN)))
	assert.False(t, s.Allowed(types.Reduce(types.FormNone)))
	assert.False(t, s.Allowed(types.Action{Kind: "Swap"}))

	_, err = s.Result()
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestReduceAssignsRoles(t *testing.T) {
	tests := []struct {
		form        types.Form
		left, right types.Prop
	}{
		{types.FormNN, types.PropNucleus, types.PropNucleus},
		{types.FormNS, types.PropNucleus, types.PropSatellite},
		{types.FormSN, types.PropSatellite, types.PropNucleus},
	}
	for _, tt := range tests {
		t.Run(string(tt.form), func(t *testing.T) {
			s := NewState([]*tree.SpanNode{tree.NewLeaf(1), tree.NewLeaf(2)})
			require.NoError(t, s.Apply(types.Shift()))
			require.NoError(t, s.Apply(types.Shift()))
			require.NoError(t, s.Apply(types.Reduce(tt.form)))

			require.True(t, s.Terminal())
			top := s.Stack()[0]
			assert.Equal(t, tt.left, top.Left.Prop)
			assert.Equal(t, tt.right, top.Right.Prop)
			assert.Same(t, top, top.Left.Parent)
			assert.Same(t, top, top.Right.Parent)
			assert.Equal(t, 1, top.Left.Span.First, "left child precedes right child")
		})
	}
}

func TestReplayExample(t *testing.T) {
	tr, err := Replay(threeEDUDoc(), exampleActions)
	require.NoError(t, err)

	root := tr.Root
	assert.Equal(t, types.PropRoot, root.Prop)
	assert.Equal(t, types.Span{First: 0, Last: 2}, root.Span)
	assert.Equal(t, types.FormSN, root.Form)
	assert.Equal(t, types.Span{First: 0, Last: 1}, root.Left.Span)
	assert.Equal(t, types.FormNS, root.Left.Form)
	assert.True(t, root.Right.IsLeaf())
	assert.Equal(t, types.Span{First: 2, Last: 2}, root.Right.Span)
}

func TestReplayRejectsIncompleteOrExtraActions(t *testing.T) {
	_, err := Replay(threeEDUDoc(), exampleActions[:4])
	assert.ErrorIs(t, err, ErrNotTerminal)

	extra := append(append([]types.Action{}, exampleActions...), types.Shift())
	_, err = Replay(threeEDUDoc(), extra)
	assert.ErrorIs(t, err, ErrIllegalAction)
}

// --- oracle-driven parsing ---

func TestParseFollowsOracle(t *testing.T) {
	p := New(&listOracle{actions: exampleActions}, levelRelations{}, nil)
	tr, err := p.Parse(context.Background(), threeEDUDoc())
	require.NoError(t, err)

	assert.Equal(t, types.FormNS, tr.Root.Left.Form)
	for _, n := range tr.Postorder() {
		if n != tr.Root {
			assert.NotEmpty(t, n.Relation, n.String())
		}
	}

	// Root is SN across sentences 0..2 -> level 1 label on the satellite,
	// "span" on the nucleus.
	assert.Equal(t, 1, tr.Root.Level)
	assert.Equal(t, "L1", tr.Root.Left.Relation)
	assert.Equal(t, "span", tr.Root.Right.Relation)
	assert.Equal(t, "span", tr.Root.Left.Left.Relation)
	assert.Equal(t, "L1", tr.Root.Left.Right.Relation)
}

func TestParseTerminatesInTwoNMinusOneActions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 9; n++ {
		edus := make([]string, n)
		sents := make([]int, n)
		for i := range edus {
			edus[i] = fmt.Sprintf("edu number %d", i)
			sents[i] = i / 2
		}
		doc := buildDoc(1, edus, sents)

		for trial := 0; trial < 5; trial++ {
			oracle := &randomOracle{rng: rng}
			tr, err := New(oracle, levelRelations{}, nil).Parse(context.Background(), doc)
			require.NoError(t, err)
			assert.Equal(t, 2*n-1, oracle.calls, "n=%d", n)
			assert.Len(t, tr.Leaves(), n)
			assert.Equal(t, types.Span{First: 1, Last: n}, tr.Root.Span)

			actions, err := GoldActions(tr)
			require.NoError(t, err)
			assert.Len(t, actions, 2*n-1)
		}
	}
}

func TestParseSkipsIllegalActions(t *testing.T) {
	oracle := rankFunc(func(_ context.Context, s Snapshot) ([]types.ScoredAction, error) {
		return []types.ScoredAction{
			{Action: types.Reduce(types.FormNN), Score: 0.9},
			{Action: types.Shift(), Score: 0.1},
		}, nil
	})
	tr, err := New(oracle, levelRelations{}, nil).Parse(context.Background(), threeEDUDoc())
	require.NoError(t, err)

	// Reduce wins whenever legal: ((0 1) 2), all NN.
	assert.Equal(t, types.FormNN, tr.Root.Form)
	assert.Equal(t, types.Span{First: 0, Last: 1}, tr.Root.Left.Span)
}

func TestParseNoLegalAction(t *testing.T) {
	oracle := rankFunc(func(context.Context, Snapshot) ([]types.ScoredAction, error) {
		return []types.ScoredAction{{Action: types.Reduce(types.FormNS), Score: 1}}, nil
	})
	_, err := New(oracle, levelRelations{}, nil).Parse(context.Background(), threeEDUDoc())
	assert.ErrorIs(t, err, ErrNoLegalAction)
	assert.Contains(t, err.Error(), "step 0")
}

func TestParseOracleError(t *testing.T) {
	boom := errors.New("model unavailable")
	oracle := rankFunc(func(context.Context, Snapshot) ([]types.ScoredAction, error) {
		return nil, boom
	})
	_, err := New(oracle, levelRelations{}, nil).Parse(context.Background(), threeEDUDoc())
	assert.ErrorIs(t, err, boom)
}

func TestParseSingleEDU(t *testing.T) {
	doc := buildDoc(1, []string{"Just one ."}, []int{0})
	tr, err := New(&randomOracle{rng: rand.New(rand.NewSource(1))}, levelRelations{}, nil).Parse(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, tr.Root.IsLeaf())
	assert.Equal(t, types.PropRoot, tr.Root.Prop)
	assert.Empty(t, tr.Bracketing())
}

func TestParseRequiresEDUsAndOracles(t *testing.T) {
	_, err := New(&listOracle{}, levelRelations{}, nil).Parse(context.Background(), types.NewDocument("empty", nil))
	assert.Error(t, err)

	_, err = New(nil, levelRelations{}, nil).Parse(context.Background(), threeEDUDoc())
	assert.Error(t, err)
}

func TestSnapshotIsIsolated(t *testing.T) {
	var seen []Snapshot
	oracle := rankFunc(func(_ context.Context, s Snapshot) ([]types.ScoredAction, error) {
		seen = append(seen, s)
		return []types.ScoredAction{{Action: types.Shift()}, {Action: types.Reduce(types.FormNS)}}, nil
	})
	clusters := types.ClusterTable{"sky": "0110"}
	_, err := New(oracle, levelRelations{}, clusters).Parse(context.Background(), threeEDUDoc())
	require.NoError(t, err)

	require.Len(t, seen, 5)
	assert.Empty(t, seen[0].Stack)
	assert.Len(t, seen[0].Queue, 3)
	assert.Empty(t, seen[0].History)
	assert.Len(t, seen[3].Stack, 3)
	assert.Len(t, seen[3].History, 3)
	assert.Equal(t, "0110", seen[0].Clusters.Lookup("sky"))
}
