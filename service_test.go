package ssmdoc_test

import (
	"context"
	"embed"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"

	"github.com/viant/ssmdoc"
	"github.com/viant/ssmdoc/service/meta"
	"github.com/viant/ssmdoc/service/registry"
	docsync "github.com/viant/ssmdoc/service/sync"
)

//go:embed testdata/*
var embedFS embed.FS

const restartGraph = `// Restarts an instance when it is running
digraph {
    Start [label=Start]
    End [label=End]
    Start -> CheckState
    CheckState -> End [label=onFailure color="red"]
    CheckState -> Route [label=onSuccess]
    Route -> Stop [label="\"Variable\": \"{{ CheckState.State }}\"\l\"StringEquals\": \"running\""]
    Route -> Resume [label="\"Or\": [{\"Variable\": \"{{ CheckState.State }}\"\l\"StringEquals\": \"stopped\"}, {\"Variable\": \"{{ CheckState.State }}\"\l\"StringEquals\": \"stopping\"}]"]
    Route -> Report [label=Default]
    Route -> End [label=onFailure color="red"]
    Stop -> Resume [label=onFailure]
    Resume -> Report [label=onSuccess]
    Resume -> Report [label=onFailure color="red"]
    Report -> End [label=onSuccess]
    Report -> End [label=onFailure color="red"]
}`

func newService(t *testing.T, config *ssmdoc.Config) *ssmdoc.Service {
	srv, err := ssmdoc.New(
		ssmdoc.WithMetaFsOptions(&embedFS),
		ssmdoc.WithMetaBaseURL("embed:///testdata"),
		ssmdoc.WithConfig(config),
	)
	require.NoError(t, err)
	return srv
}

func TestService_Graph(t *testing.T) {
	ctx := context.Background()
	srv := newService(t, nil)

	dot, err := srv.Graph(ctx, "Documents/restart/restart.json")
	require.NoError(t, err)
	assert.Equal(t, restartGraph, dot)

	dot, err = srv.Graph(ctx, "trailing")
	require.NoError(t, err)
	assert.NotContains(t, dot, "Collect -> End [label=onSuccess]")

	config := ssmdoc.DefaultConfig()
	config.Graph.Trailing = "end"
	dot, err = newService(t, config).Graph(ctx, "trailing")
	require.NoError(t, err)
	assert.Contains(t, dot, "    Collect -> End [label=onSuccess]\n}")
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()
	config := ssmdoc.DefaultConfig()
	config.Build.OutputURL = "mem://localhost/ssmdoc/run/output"
	config.Publish.BucketURL = "mem://localhost/ssmdoc/run/bucket"
	srv := newService(t, config)

	report, err := srv.Run(ctx)
	require.NoError(t, err)
	require.Len(t, report.Artifacts, 2)
	assert.Equal(t, "restart", report.Artifacts[0].Name)

	require.Len(t, report.Documents, 2)
	for _, change := range report.Documents {
		assert.Equal(t, docsync.ActionCreated, change.Action)
	}
	require.Len(t, report.Permissions, 1)
	assert.True(t, report.Permissions[0].Modified)
	assert.Equal(t, []string{"111111111111", "222222222222"}, report.Permissions[0].Shared)

	var published []string
	for _, asset := range report.Assets {
		published = append(published, asset.Name)
	}
	sort.Strings(published)
	assert.Equal(t, []string{"plain.dot", "plain.json", "restart.dot", "restart.json"}, published)

	dot, err := afs.New().DownloadWithURL(ctx, config.Publish.BucketURL+"/restart.dot")
	require.NoError(t, err)
	assert.Equal(t, restartGraph, string(dot))

	content, err := srv.Registry().GetDocument(ctx, "restart", registry.DefaultVersion)
	require.NoError(t, err)
	assert.Contains(t, content.Content, `"#!/bin/bash"`)

	changes, err := srv.Sync(ctx)
	require.NoError(t, err)
	for _, change := range changes {
		assert.Equal(t, docsync.ActionUnchanged, change.Action)
	}
}

func TestService_Sync_PersistentRegistry(t *testing.T) {
	ctx := context.Background()
	config := ssmdoc.DefaultConfig()
	config.Build.OutputURL = "mem://localhost/ssmdoc/persistent/output"
	config.Registry.URL = "mem://localhost/ssmdoc/persistent/registry"

	first := newService(t, config)
	_, err := first.Build(ctx)
	require.NoError(t, err)
	changes, err := first.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	for _, change := range changes {
		assert.Equal(t, docsync.ActionCreated, change.Action)
	}
	permissions, err := first.SyncPermissions(ctx)
	require.NoError(t, err)
	require.Len(t, permissions, 1)
	assert.True(t, permissions[0].Modified)

	second := newService(t, config)
	changes, err = second.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	for _, change := range changes {
		assert.Equal(t, docsync.ActionUnchanged, change.Action, change.Name)
		assert.Equal(t, "1", change.LatestVersion)
	}
	permissions, err = second.SyncPermissions(ctx)
	require.NoError(t, err)
	require.Len(t, permissions, 1)
	assert.False(t, permissions[0].Modified)

	inMemory := newService(t, func() *ssmdoc.Config { c := *config; c.Registry.URL = ""; return &c }())
	changes, err = inMemory.Sync(ctx)
	require.NoError(t, err)
	for _, change := range changes {
		assert.Equal(t, docsync.ActionCreated, change.Action)
	}
}

func TestLoadConfig(t *testing.T) {
	metaService := meta.New(afs.New(), "embed:///testdata", &embedFS)
	config, err := ssmdoc.LoadConfig(context.Background(), metaService, "ssmdoc.yaml")
	require.NoError(t, err)
	assert.Equal(t, "mem://localhost/ssmdoc/config/output", config.Build.OutputURL)
	assert.Equal(t, 2, config.Build.Workers)
	assert.Equal(t, "end", config.Graph.Trailing)
	assert.Equal(t, "build_documents_config.json", config.Build.ConfigURL)
	assert.Equal(t, "document_permissions.json", config.Permissions.ConfigURL)
	assert.True(t, config.Build.Graph)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *ssmdoc.Config)
		wantErr bool
	}{
		{name: "default", mutate: func(c *ssmdoc.Config) {}},
		{name: "no workers", mutate: func(c *ssmdoc.Config) { c.Build.Workers = 0 }, wantErr: true},
		{name: "no output", mutate: func(c *ssmdoc.Config) { c.Build.OutputURL = "" }, wantErr: true},
		{name: "trailing end", mutate: func(c *ssmdoc.Config) { c.Graph.Trailing = "END" }},
		{name: "unknown trailing", mutate: func(c *ssmdoc.Config) { c.Graph.Trailing = "loop" }, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := ssmdoc.DefaultConfig()
			tc.mutate(config)
			err := config.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	config := ssmdoc.DefaultConfig()
	config.Graph.Trailing = "loop"
	_, err := ssmdoc.New(ssmdoc.WithConfig(config))
	assert.Error(t, err)
}
