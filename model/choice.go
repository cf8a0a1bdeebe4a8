package model

import (
	"github.com/viant/ssmdoc/internal/yml"
)

// ChoiceTargetField names the choice field holding the branch destination
const ChoiceTargetField = "NextStep"

// Choice represents a branch choice: an ordered mapping of condition fields
// plus the NextStep target. The underlying mapping is never modified.
type Choice struct {
	node *yml.Node
}

// NewChoice creates a choice routing to target
func NewChoice(target string) *Choice {
	node := (*yml.Node)(yml.NewMap())
	node.Put(ChoiceTargetField, target)
	return &Choice{node: node}
}

// NewConditionChoice creates a choice without a target field
func NewConditionChoice() *Choice {
	return &Choice{node: (*yml.Node)(yml.NewMap())}
}

// ChoiceFromNode wraps a mapping node
func ChoiceFromNode(node *yml.Node) *Choice {
	return &Choice{node: node}
}

// WithCondition appends a condition field; value can be a scalar, slice, map or *yml.Node
func (c *Choice) WithCondition(key string, value interface{}) *Choice {
	c.node.Put(key, value)
	return c
}

// Target returns the NextStep value and whether it was defined
func (c *Choice) Target() (string, bool) {
	if c == nil || c.node == nil {
		return "", false
	}
	target := c.node.Lookup(ChoiceTargetField)
	if target == nil {
		return "", false
	}
	return target.String(), true
}

// Conditions returns a copy of the choice without the target field
func (c *Choice) Conditions() *yml.Node {
	if c == nil || c.node == nil {
		return (*yml.Node)(yml.NewMap())
	}
	return c.node.Without(ChoiceTargetField)
}

// Node returns the underlying mapping
func (c *Choice) Node() *yml.Node {
	return c.node
}
