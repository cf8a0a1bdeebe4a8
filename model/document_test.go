package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Builder(t *testing.T) {
	doc := NewDocument("Restart")
	doc.NewStep("Stop", "aws:changeInstanceState").WithNextStep("Start").WithOnFailure(OnFailureContinue).WithIsCritical("false")
	doc.NewStep("Start", "aws:changeInstanceState").WithIsEnd(true)
	doc.NewStep("Check", "AWS:BRANCH").WithChoice(NewChoice("Stop").WithCondition("Variable", "x")).WithDefault("Start")

	assert.Len(t, doc.Steps, 3)
	stop := doc.Step("Stop")
	assert.True(t, stop.HasNextStep())
	assert.True(t, stop.IsCritical.IsFalse())
	assert.False(t, stop.IsBranch())
	assert.True(t, doc.Step("Start").IsEnd.IsTrue())
	assert.True(t, doc.Step("Check").IsBranch())
	assert.Nil(t, doc.Step("Missing"))
	assert.Empty(t, doc.Validate())
}

func TestDocument_Validate(t *testing.T) {
	doc := NewDocument("")
	doc.NewStep("A", "aws:sleep")
	doc.NewStep("A", "aws:sleep")
	doc.NewStep("", "aws:sleep")
	issues := doc.Validate()
	assert.Len(t, issues, 2)
}

func TestChoice(t *testing.T) {
	choice := NewChoice("Next").WithCondition("Variable", "{{ x }}").WithCondition("StringEquals", "y")
	target, ok := choice.Target()
	assert.True(t, ok)
	assert.Equal(t, "Next", target)

	conditions := choice.Conditions()
	assert.False(t, conditions.Has(ChoiceTargetField))
	assert.True(t, choice.Node().Has(ChoiceTargetField))

	_, ok = NewConditionChoice().Target()
	assert.False(t, ok)
	var nilChoice *Choice
	_, ok = nilChoice.Target()
	assert.False(t, ok)
}
