package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlag(t *testing.T) {
	yes, no := true, false
	testCases := []struct {
		name   string
		input  interface{}
		expect Flag
	}{
		{name: "nil", input: nil, expect: FlagUnset},
		{name: "bool true", input: true, expect: FlagTrue},
		{name: "bool false", input: false, expect: FlagFalse},
		{name: "string true", input: "True", expect: FlagTrue},
		{name: "string false", input: "FALSE", expect: FlagFalse},
		{name: "other string", input: "yes", expect: FlagUnset},
		{name: "number", input: 1, expect: FlagUnset},
		{name: "pointer", input: &yes, expect: FlagTrue},
		{name: "pointer false", input: &no, expect: FlagFalse},
		{name: "nil pointer", input: (*bool)(nil), expect: FlagUnset},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ParseFlag(tc.input))
		})
	}
}

func TestFlag_Predicates(t *testing.T) {
	assert.True(t, FlagTrue.IsTrue())
	assert.False(t, FlagUnset.IsTrue())
	assert.True(t, FlagFalse.IsFalse())
	assert.False(t, FlagUnset.IsFalse())
	assert.Equal(t, "unset", FlagUnset.String())
}
