package model

import (
	"fmt"
	"strings"

	"github.com/viant/ssmdoc/internal/yml"
)

// ActionBranch is the only action that fans out its success path
const ActionBranch = "aws:branch"

const (
	// OnFailureAbort routes a failed step to the end of the workflow
	OnFailureAbort = "Abort"
	// OnFailureContinue continues with the next step on failure
	OnFailureContinue = "Continue"
	// StepTargetPrefix optionally qualifies an onFailure step name
	StepTargetPrefix = "step:"
)

type (
	// Document represents an automation document definition
	Document struct {
		// Name is derived from the source location
		Name string `json:"name,omitempty" yaml:"name,omitempty"`
		// Description is rendered as the graph header
		Description   string  `json:"description,omitempty" yaml:"description,omitempty"`
		SchemaVersion string  `json:"schemaVersion,omitempty" yaml:"schemaVersion,omitempty"`
		Steps         []*Step `json:"mainSteps,omitempty" yaml:"mainSteps,omitempty"`
		// Source holds the ordered document tree the model was parsed from
		Source *yml.Node `json:"-" yaml:"-"`
	}

	// Step represents a single document step
	Step struct {
		Name       string    `json:"name" yaml:"name"`
		Action     string    `json:"action,omitempty" yaml:"action,omitempty"`
		NextStep   string    `json:"nextStep,omitempty" yaml:"nextStep,omitempty"`
		IsEnd      Flag      `json:"-" yaml:"-"`
		OnFailure  string    `json:"onFailure,omitempty" yaml:"onFailure,omitempty"`
		IsCritical Flag      `json:"-" yaml:"-"`
		Choices    []*Choice `json:"-" yaml:"-"`
		Default    string    `json:"default,omitempty" yaml:"default,omitempty"`
	}
)

// NewDocument creates a document with the given description
func NewDocument(description string) *Document {
	return &Document{Description: description}
}

// NewStep creates a new step and appends it to the document
func (d *Document) NewStep(name, action string) *Step {
	step := &Step{Name: name, Action: action}
	d.Steps = append(d.Steps, step)
	return step
}

// Step returns a step by name
func (d *Document) Step(name string) *Step {
	for _, step := range d.Steps {
		if step.Name == name {
			return step
		}
	}
	return nil
}

// IsBranch returns true for aws:branch steps
func (s *Step) IsBranch() bool {
	return strings.EqualFold(s.Action, ActionBranch)
}

// HasNextStep returns true when the step defines an explicit successor
func (s *Step) HasNextStep() bool {
	return s.NextStep != ""
}

// WithNextStep sets the explicit successor
func (s *Step) WithNextStep(name string) *Step {
	s.NextStep = name
	return s
}

// WithIsEnd sets the isEnd flag
func (s *Step) WithIsEnd(value interface{}) *Step {
	s.IsEnd = ParseFlag(value)
	return s
}

// WithOnFailure sets the failure transition
func (s *Step) WithOnFailure(onFailure string) *Step {
	s.OnFailure = onFailure
	return s
}

// WithIsCritical sets the isCritical flag
func (s *Step) WithIsCritical(value interface{}) *Step {
	s.IsCritical = ParseFlag(value)
	return s
}

// WithChoice appends a branch choice
func (s *Step) WithChoice(choice *Choice) *Step {
	s.Choices = append(s.Choices, choice)
	return s
}

// WithDefault sets the branch default target
func (s *Step) WithDefault(name string) *Step {
	s.Default = name
	return s
}

// Validate performs a structural check of the document. Step targets are not
// resolved; only names are verified.
func (d *Document) Validate() []error {
	var issues []error
	seen := map[string]bool{}
	for i, step := range d.Steps {
		if step == nil {
			issues = append(issues, fmt.Errorf("step %d is nil", i))
			continue
		}
		if step.Name == "" {
			issues = append(issues, fmt.Errorf("step %d has no name", i))
			continue
		}
		if seen[step.Name] {
			issues = append(issues, fmt.Errorf("duplicate step name %s", step.Name))
		}
		seen[step.Name] = true
	}
	return issues
}
