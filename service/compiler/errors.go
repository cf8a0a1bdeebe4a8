package compiler

import (
	"errors"
	"fmt"
)

// ErrMissingChoiceTarget is returned when a branch choice has no NextStep field
var ErrMissingChoiceTarget = errors.New("choice has no NextStep")

// ErrNilStep is returned when a document holds a nil step
var ErrNilStep = errors.New("step was nil")

// StructuralError reports a malformed step structure
type StructuralError struct {
	Step   string
	Choice int
	Err    error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("step %v: choice %d: %v", e.Step, e.Choice, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}
