package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConvertTemplate(t *testing.T) {
	testCases := []struct {
		name     string
		template string
		expect   map[string]interface{}
	}{
		{
			name:     "ref kept",
			template: "Value: !Ref Bucket\n",
			expect:   map[string]interface{}{"Value": map[string]interface{}{"Ref": "Bucket"}},
		},
		{
			name:     "condition kept",
			template: "Value: !Condition IsProd\n",
			expect:   map[string]interface{}{"Value": map[string]interface{}{"Condition": "IsProd"}},
		},
		{
			name:     "get attribute split",
			template: "Value: !GetAtt Bucket.Arn\n",
			expect:   map[string]interface{}{"Value": map[string]interface{}{"Fn::GetAtt": []interface{}{"Bucket", "Arn"}}},
		},
		{
			name:     "nested sequence",
			template: "IsProd: !Equals [!Ref Env, prod]\n",
			expect: map[string]interface{}{"IsProd": map[string]interface{}{
				"Fn::Equals": []interface{}{map[string]interface{}{"Ref": "Env"}, "prod"},
			}},
		},
		{
			name:     "mapping",
			template: "Value: !Transform\n  Name: AWS::Include\n",
			expect: map[string]interface{}{"Value": map[string]interface{}{
				"Fn::Transform": map[string]interface{}{"Name": "AWS::Include"},
			}},
		},
		{
			name:     "sequence with nested tag",
			template: "Value: !Sub\n  - ${Name}-logs\n  - Name: !Ref Bucket\n",
			expect: map[string]interface{}{"Value": map[string]interface{}{
				"Fn::Sub": []interface{}{"${Name}-logs", map[string]interface{}{"Name": map[string]interface{}{"Ref": "Bucket"}}},
			}},
		},
		{
			name:     "scalar stays a string",
			template: "Value: !Base64 123\n",
			expect:   map[string]interface{}{"Value": map[string]interface{}{"Fn::Base64": "123"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, err := ConvertTemplate([]byte(tc.template))
			require.NoError(t, err)
			assert.NotContains(t, body, " !")
			var actual map[string]interface{}
			require.NoError(t, yaml.Unmarshal([]byte(body), &actual))
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestConvertTemplate_Indent(t *testing.T) {
	body, err := ConvertTemplate([]byte("Outputs:\n    Name:\n        Value: !Ref Bucket\n"))
	require.NoError(t, err)
	assert.Equal(t, "Outputs:\n  Name:\n    Value:\n      Ref: Bucket\n", body)
}

func TestConvertTemplate_Errors(t *testing.T) {
	_, err := ConvertTemplate([]byte("Value: [unterminated\n"))
	assert.Error(t, err)

	_, err = ConvertTemplate(nil)
	assert.Error(t, err)

	large := "Value: " + strings.Repeat("a", MaxTemplateBodySize) + "\n"
	_, err = ConvertTemplate([]byte(large))
	assert.ErrorContains(t, err, "too long")
}

func TestScriptLines(t *testing.T) {
	testCases := []struct {
		name   string
		script string
		expect []string
	}{
		{name: "empty", script: "", expect: []string{}},
		{name: "single line", script: "echo hi", expect: []string{"echo hi"}},
		{name: "trailing newline", script: "a\nb\n", expect: []string{"a", "b"}},
		{name: "blank lines kept", script: "a\n\nb\n\n", expect: []string{"a", "", "b", ""}},
		{name: "crlf", script: "a\r\nb\r\n", expect: []string{"a", "b"}},
		{name: "tabs", script: "if x; then\n\t\techo\nfi", expect: []string{"if x; then", "        echo", "fi"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ScriptLines([]byte(tc.script)))
		})
	}
}
