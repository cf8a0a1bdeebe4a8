package compiler

import (
	"strings"

	"github.com/viant/ssmdoc/model"
	"github.com/viant/ssmdoc/model/graph"
)

// Pending is the deferred edge slot carried from one step to the next.
// The zero value is NoPendingEdge.
type Pending struct {
	From    string
	Label   string
	Failure bool
	set     bool
}

// NoPendingEdge represents an empty slot
var NoPendingEdge = Pending{}

// PendingEdge creates a deferred edge whose destination is the next step
func PendingEdge(from, label string, failure bool) Pending {
	return Pending{From: from, Label: label, Failure: failure, set: true}
}

// IsSet returns true when an edge awaits resolution
func (p Pending) IsSet() bool {
	return p.set
}

// Resolve returns the deferred edge routed to the given node
func (p Pending) Resolve(to string) *graph.Edge {
	return &graph.Edge{From: p.From, To: to, Label: p.Label, Failure: p.Failure}
}

// Transition holds the edges contributed by a step and the pending slot
// handed to the following step.
type Transition struct {
	Edges   []*graph.Edge
	Pending Pending
	// Dropped is a success deferral replaced by a failure deferral of the same step
	Dropped Pending
}

func (t *Transition) emit(from, to, label string, failure bool) {
	t.Edges = append(t.Edges, &graph.Edge{From: from, To: to, Label: label, Failure: failure})
}

func (t *Transition) deferEdge(from, label string, failure bool) {
	if t.Pending.IsSet() {
		t.Dropped = t.Pending
	}
	t.Pending = PendingEdge(from, label, failure)
}

// Resolve computes the outgoing edges of a step. An inherited pending edge is
// routed to the step first; when both the success and the failure path defer,
// the failure deferral takes the slot.
func Resolve(step *model.Step, pending Pending) (*Transition, error) {
	if step == nil {
		return nil, ErrNilStep
	}
	ret := &Transition{}
	if pending.IsSet() {
		ret.Edges = append(ret.Edges, pending.Resolve(step.Name))
	}
	if err := ret.resolveSuccess(step); err != nil {
		return nil, err
	}
	ret.resolveFailure(step)
	return ret, nil
}

func (t *Transition) resolveSuccess(step *model.Step) error {
	switch {
	case step.IsBranch():
		for i, choice := range step.Choices {
			label, err := FormatChoice(choice)
			if err != nil {
				return &StructuralError{Step: step.Name, Choice: i, Err: err}
			}
			target, _ := choice.Target()
			t.emit(step.Name, target, label, false)
		}
		if step.Default != "" {
			t.emit(step.Name, step.Default, graph.LabelDefault, false)
		}
	case step.HasNextStep():
		t.emit(step.Name, step.NextStep, graph.LabelSuccess, false)
	case step.IsEnd.IsTrue():
		t.emit(step.Name, graph.End, graph.LabelSuccess, false)
	default:
		t.deferEdge(step.Name, graph.LabelSuccess, false)
	}
	return nil
}

func (t *Transition) resolveFailure(step *model.Step) {
	critical := !step.IsCritical.IsFalse()
	switch {
	case step.OnFailure == "", strings.EqualFold(step.OnFailure, model.OnFailureAbort):
		t.emit(step.Name, graph.End, graph.LabelFailure, true)
	case strings.EqualFold(step.OnFailure, model.OnFailureContinue):
		if step.HasNextStep() {
			t.emit(step.Name, step.NextStep, graph.LabelFailure, critical)
			return
		}
		t.deferEdge(step.Name, graph.LabelFailure, critical)
	default:
		target := strings.TrimPrefix(step.OnFailure, model.StepTargetPrefix)
		t.emit(step.Name, target, graph.LabelFailure, critical)
	}
}
