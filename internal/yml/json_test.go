package yml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDecodeJSON_PreservesOrder(t *testing.T) {
	node, err := DecodeJSON([]byte(`{"z": 1, "a": {"y": [true, null, 2.5], "b": "x"}}`))
	require.NoError(t, err)

	var keys []string
	_ = node.Pairs(func(key string, _ *Node) error {
		keys = append(keys, key)
		return nil
	})
	assert.Equal(t, []string{"z", "a"}, keys)

	encoded, err := node.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z": 1, "a": {"y": [true, null, 2.5], "b": "x"}}`, string(encoded))
}

func TestDecodeJSON_Invalid(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)
	_, err = DecodeJSON([]byte(`{"a": `))
	assert.Error(t, err)
}

func TestEncodeJSON_Escaping(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "quotes", input: `{"k": "say \"hi\""}`, expect: `{"k": "say \"hi\""}`},
		{name: "control", input: `{"k": "a\nb\tc"}`, expect: `{"k": "a\nb\tc"}`},
		{name: "non ascii", input: `{"k": "café"}`, expect: `{"k": "caf\u00e9"}`},
		{name: "astral", input: `{"k": "😀"}`, expect: `{"k": "\ud83d\ude00"}`},
		{name: "empty", input: `{"k": {}, "l": []}`, expect: `{"k": {}, "l": []}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			node, err := DecodeJSON([]byte(tc.input))
			require.NoError(t, err)
			actual, err := node.JSON()
			require.NoError(t, err)
			assert.Equal(t, tc.expect, string(actual))
		})
	}
}

func TestNode_Without(t *testing.T) {
	node, err := DecodeJSON([]byte(`{"NextStep": "S2", "Variable": "{{ x }}", "StringEquals": "a"}`))
	require.NoError(t, err)

	stripped := node.Without("NextStep")
	assert.False(t, stripped.Has("NextStep"))
	assert.True(t, node.Has("NextStep"))
	assert.Equal(t, "S2", node.Lookup("NextStep").String())

	stripped.Set("Variable", "changed")
	assert.Equal(t, "{{ x }}", node.Lookup("Variable").String())
}

func TestNode_SetAndEnsure(t *testing.T) {
	node, err := DecodeJSON([]byte(`{"inputs": {"Parameters": {"commands": ["old"]}}}`))
	require.NoError(t, err)

	params := node.Ensure("inputs").Ensure("Parameters")
	params.Set("commands", []string{"echo 1", "echo 2"})
	node.Ensure("outputs").Set("name", "value")

	actual, err := node.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"inputs": {"Parameters": {"commands": ["echo 1", "echo 2"]}}, "outputs": {"name": "value"}}`, string(actual))
}

func TestEncodeJSON_Numbers(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "trailing zero", input: `{"n": 1.50}`, expect: `{"n": 1.5}`},
		{name: "exponent", input: `{"n": 1E3}`, expect: `{"n": 1000.0}`},
		{name: "small exponent", input: `{"n": 1.5e-5}`, expect: `{"n": 1.5e-05}`},
		{name: "fixed boundary", input: `{"n": 0.0001}`, expect: `{"n": 0.0001}`},
		{name: "large float", input: `{"n": 1e16}`, expect: `{"n": 1e+16}`},
		{name: "negative zero int", input: `{"n": -0}`, expect: `{"n": 0}`},
		{name: "big int", input: `{"n": 123456789012345678901234567890}`, expect: `{"n": 123456789012345678901234567890}`},
		{name: "overflow", input: `{"n": 1e400}`, expect: `{"n": Infinity}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			node, err := DecodeJSON([]byte(tc.input))
			require.NoError(t, err)
			actual, err := node.JSON()
			require.NoError(t, err)
			assert.Equal(t, tc.expect, string(actual))
		})
	}
}

func TestEncodeJSON_YAMLNumbers(t *testing.T) {
	var document yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("hex: 0x10\noctal: 0o17\nfloat: !!float 10\nweight: 2.50\ninf: .inf\n"), &document))
	actual, err := (*Node)(&document).JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"hex": 16, "octal": 15, "float": 10.0, "weight": 2.5, "inf": Infinity}`, string(actual))
}
