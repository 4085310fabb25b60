// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Prop is the structural role of a discourse tree node relative to its parent.
type Prop string

const (
	PropNone      Prop = ""
	PropRoot      Prop = "Root"
	PropNucleus   Prop = "Nucleus"
	PropSatellite Prop = "Satellite"
)

// Form encodes which children of an internal node are Nucleus or Satellite.
// Satellite-Satellite is not a legal form.
type Form string

const (
	FormNone Form = ""
	FormNN   Form = "NN"
	FormNS   Form = "NS"
	FormSN   Form = "SN"
)

// Valid reports whether f is one of NN, NS or SN.
func (f Form) Valid() bool {
	return f == FormNN || f == FormNS || f == FormSN
}

// Props returns the roles the form assigns to the left and right child.
func (f Form) Props() (left, right Prop, err error) {
	switch f {
	case FormNN:
		return PropNucleus, PropNucleus, nil
	case FormNS:
		return PropNucleus, PropSatellite, nil
	case FormSN:
		return PropSatellite, PropNucleus, nil
	}
	return PropNone, PropNone, fmt.Errorf("invalid nuclearity form %q", string(f))
}

// FormOf derives the form from an ordered pair of child roles. It fails
// for any pair other than (N,S), (S,N) and (N,N).
func FormOf(left, right Prop) (Form, error) {
	switch {
	case left == PropNucleus && right == PropSatellite:
		return FormNS, nil
	case left == PropSatellite && right == PropNucleus:
		return FormSN, nil
	case left == PropNucleus && right == PropNucleus:
		return FormNN, nil
	}
	return FormNone, fmt.Errorf("illegal nuclearity pair (%s, %s)", left, right)
}

// ActionKind is the type of a shift-reduce transition.
type ActionKind string

const (
	ActionShift  ActionKind = "Shift"
	ActionReduce ActionKind = "Reduce"
)

// Action is one transition of the shift-reduce parser. Form is set only for
// Reduce actions.
type Action struct {
	Kind ActionKind `json:"kind" yaml:"kind"`
	Form Form       `json:"form,omitempty" yaml:"form,omitempty"`
}

// Shift returns the Shift action.
func Shift() Action {
	return Action{Kind: ActionShift}
}

// Reduce returns the Reduce action with the given form.
func Reduce(f Form) Action {
	return Action{Kind: ActionReduce, Form: f}
}

// Vocabulary lists every action the parser can take, in a fixed order.
var Vocabulary = []Action{
	Shift(),
	Reduce(FormNN),
	Reduce(FormNS),
	Reduce(FormSN),
}

// String renders the action as "Shift" or "Reduce-NS".
func (a Action) String() string {
	if a.Kind == ActionReduce {
		return string(a.Kind) + "-" + string(a.Form)
	}
	return string(a.Kind)
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if s == string(ActionShift) {
		return Shift(), nil
	}
	kind, form, ok := strings.Cut(s, "-")
	if !ok || kind != string(ActionReduce) || !Form(form).Valid() {
		return Action{}, fmt.Errorf("invalid action %q", s)
	}
	return Reduce(Form(form)), nil
}

// ScoredAction pairs an action with the confidence an oracle assigns it.
type ScoredAction struct {
	Action Action  `json:"action" yaml:"action"`
	Score  float64 `json:"score" yaml:"score"`
}
