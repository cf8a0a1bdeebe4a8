package document

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"

	"github.com/viant/ssmdoc/model"
	"github.com/viant/ssmdoc/service/meta"
)

//go:embed testdata/*
var testFS embed.FS

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	srv := New(WithMetaService(meta.New(afs.New(), "embed:///testdata", &testFS)))

	t.Run("json document", func(t *testing.T) {
		doc, err := srv.Load(ctx, "restart.json")
		require.NoError(t, err)
		assert.Equal(t, "restart", doc.Name)
		assert.Equal(t, "Restarts an instance when it is running", doc.Description)
		assert.Equal(t, "0.3", doc.SchemaVersion)
		require.Len(t, doc.Steps, 5)

		route := doc.Step("Route")
		require.NotNil(t, route)
		assert.True(t, route.IsBranch())
		assert.Equal(t, "Report", route.Default)
		require.Len(t, route.Choices, 2)
		target, ok := route.Choices[1].Target()
		assert.True(t, ok)
		assert.Equal(t, "Resume", target)

		stop := doc.Step("Stop")
		assert.Equal(t, model.OnFailureContinue, stop.OnFailure)
		assert.Equal(t, model.FlagFalse, stop.IsCritical)

		resume := doc.Step("Resume")
		assert.Equal(t, "Report", resume.NextStep)
		assert.Equal(t, "step:Report", resume.OnFailure)
		assert.Equal(t, model.FlagTrue, doc.Step("Report").IsEnd)
		assert.NotNil(t, doc.Source)
	})

	t.Run("default extension", func(t *testing.T) {
		doc, err := srv.Load(ctx, "restart")
		require.NoError(t, err)
		assert.Len(t, doc.Steps, 5)
	})

	t.Run("yaml document", func(t *testing.T) {
		doc, err := srv.Load(ctx, "patch.yaml")
		require.NoError(t, err)
		assert.Equal(t, "patch", doc.Name)
		require.Len(t, doc.Steps, 2)
		assert.Equal(t, model.FlagFalse, doc.Steps[0].IsCritical)
		assert.Equal(t, model.FlagTrue, doc.Steps[1].IsEnd)
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := srv.Load(ctx, "missing.json")
		assert.Error(t, err)
	})
}

func TestService_DecodeJSON(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		steps     int
		expectErr bool
	}{
		{name: "empty steps", input: `{"description": "x", "mainSteps": []}`},
		{name: "no steps node", input: `{"description": "x"}`},
		{name: "steps", input: `{"mainSteps": [{"name": "A", "action": "aws:sleep"}, {"name": "B", "action": "aws:sleep"}]}`, steps: 2},
		{name: "duplicate names", input: `{"mainSteps": [{"name": "A"}, {"name": "A"}]}`, expectErr: true},
		{name: "steps not a sequence", input: `{"mainSteps": {"name": "A"}}`, expectErr: true},
		{name: "choices not a sequence", input: `{"mainSteps": [{"name": "A", "action": "aws:branch", "inputs": {"Choices": {}}}]}`, expectErr: true},
		{name: "steps key is case sensitive", input: `{"MainSteps": [{"name": "A"}]}`},
		{name: "root not a mapping", input: `["A"]`, expectErr: true},
		{name: "invalid json", input: `{"mainSteps": [`, expectErr: true},
	}
	srv := New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := srv.DecodeJSON([]byte(tc.input))
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, doc.Steps, tc.steps)
		})
	}
}

func TestService_DecodeYAML(t *testing.T) {
	doc, err := New().DecodeYAML([]byte("description: d\nmainSteps:\n  - name: A\n    action: aws:branch\n    inputs:\n      Choices:\n        - NextStep: B\n          Variable: x\n      Default: C\n"))
	require.NoError(t, err)
	require.Len(t, doc.Steps, 1)
	assert.Len(t, doc.Steps[0].Choices, 1)
	assert.Equal(t, "C", doc.Steps[0].Default)
}

func TestService_DecodeJSON_StepKeysAsWritten(t *testing.T) {
	doc, err := New().DecodeJSON([]byte(`{"mainSteps": [
		{"name": "A", "action": "AWS:Branch", "NEXTSTEP": "Z", "IsEnd": true, "ONFAILURE": "Abort", "isCritical": "FALSE"}
	]}`))
	require.NoError(t, err)
	require.Len(t, doc.Steps, 1)
	step := doc.Steps[0]
	assert.Empty(t, step.NextStep)
	assert.Equal(t, model.FlagUnset, step.IsEnd)
	assert.Empty(t, step.OnFailure)
	assert.Equal(t, model.FlagFalse, step.IsCritical)
	assert.True(t, step.IsBranch())
}
