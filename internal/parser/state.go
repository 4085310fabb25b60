// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parser implements the shift-reduce transition system that builds
// a binary discourse tree over a document's EDUs, the oracle-driven parse
// loop, and replay of gold trees for training data.
package parser

import (
	"errors"
	"fmt"

	"github.com/pdiddy/discourse-engine/internal/tree"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

var (
	// ErrIllegalAction is returned when an action is applied in a state
	// that does not allow it.
	ErrIllegalAction = errors.New("illegal action")

	// ErrNoLegalAction is returned when none of the actions ranked by the
	// action oracle is legal in the current state.
	ErrNoLegalAction = errors.New("no legal action in oracle ranking")

	// ErrNotTerminal is returned when a tree is requested before parsing
	// has finished.
	ErrNotTerminal = errors.New("parsing state is not terminal")
)

// State is the (stack, queue) configuration of one parse. The top of the
// stack is the last element; the queue holds unshifted EDU leaves in
// document order.
type State struct {
	stack []*tree.SpanNode
	queue []*tree.SpanNode
}

// NewState returns the initial state over the given leaves.
func NewState(leaves []*tree.SpanNode) *State {
	q := make([]*tree.SpanNode, len(leaves))
	copy(q, leaves)
	return &State{queue: q}
}

// NewDocumentState returns the initial state with one fresh leaf per EDU
// of doc.
func NewDocumentState(doc *types.Document) *State {
	edus := doc.EDUs()
	leaves := make([]*tree.SpanNode, len(edus))
	for i, edu := range edus {
		leaves[i] = tree.NewLeaf(edu)
	}
	return &State{queue: leaves}
}

// Stack returns a copy of the stack, bottom first.
func (s *State) Stack() []*tree.SpanNode {
	out := make([]*tree.SpanNode, len(s.stack))
	copy(out, s.stack)
	return out
}

// Queue returns a copy of the queue, front first.
func (s *State) Queue() []*tree.SpanNode {
	out := make([]*tree.SpanNode, len(s.queue))
	copy(out, s.queue)
	return out
}

// Terminal reports whether the queue is empty and exactly one node is left
// on the stack.
func (s *State) Terminal() bool {
	return len(s.queue) == 0 && len(s.stack) == 1
}

// Allowed reports whether a can be applied in the current state.
func (s *State) Allowed(a types.Action) bool {
	switch a.Kind {
	case types.ActionShift:
		return len(s.queue) > 0
	case types.ActionReduce:
		return len(s.stack) >= 2 && a.Form.Valid()
	}
	return false
}

// Apply performs a. Shift moves the queue front onto the stack. Reduce pops
// the top two nodes, sets their roles from the form, and pushes a new
// internal node over them.
func (s *State) Apply(a types.Action) error {
	if !s.Allowed(a) {
		return fmt.Errorf("%w: %s with stack=%d queue=%d", ErrIllegalAction, a, len(s.stack), len(s.queue))
	}
	if a.Kind == types.ActionShift {
		s.stack = append(s.stack, s.queue[0])
		s.queue = s.queue[1:]
		return nil
	}

	leftProp, rightProp, err := a.Form.Props()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalAction, err)
	}
	n := len(s.stack)
	left, right := s.stack[n-2], s.stack[n-1]
	left.Prop, right.Prop = leftProp, rightProp
	s.stack = append(s.stack[:n-2], tree.NewInternal(left, right))
	return nil
}

// Result returns the single remaining node, marked as the root.
func (s *State) Result() (*tree.SpanNode, error) {
	if !s.Terminal() {
		return nil, fmt.Errorf("%w: stack=%d queue=%d", ErrNotTerminal, len(s.stack), len(s.queue))
	}
	root := s.stack[0]
	root.Prop = types.PropRoot
	root.Parent = nil
	return root, nil
}
