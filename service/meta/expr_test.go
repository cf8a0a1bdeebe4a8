package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvExpr(t *testing.T) {
	testCases := []struct {
		name   string
		env    map[string]string
		input  string
		expect string
	}{
		{name: "no expressions", input: "Output/restart.json", expect: "Output/restart.json"},
		{name: "single expression", env: map[string]string{"BUCKET": "ssm-automation"}, input: "s3://${env.BUCKET}/docs", expect: "s3://ssm-automation/docs"},
		{name: "multiple expressions", env: map[string]string{"A": "1", "B": "2"}, input: "${env.A}-${env.B}-${env.A}", expect: "1-2-1"},
		{name: "unset variable becomes empty", input: "unset=${env.SSMDOC_NOTSET}-end", expect: "unset=-end"},
		{name: "malformed missing closing brace", env: map[string]string{"X": "x"}, input: "start ${env.X and ${env.Y} end", expect: "start ${env.X and  end"},
		{name: "prefix only no key", input: "oops ${env.} done", expect: "oops  done"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			t.Setenv("Y", "")
			assert.Equal(t, tc.expect, expandEnvExpr(tc.input))
		})
	}
}
