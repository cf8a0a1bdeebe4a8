package publisher

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

func TestService_Publish(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	outputURL := "mem://localhost/publisher/output"
	bucketURL := "mem://localhost/publisher/bucket"
	files := map[string]string{
		"restart.json": `{"description": "restart"}`,
		"restart.dot":  "digraph {\n}",
	}
	for name, content := range files {
		require.NoError(t, fs.Upload(ctx, outputURL+"/"+name, file.DefaultFileOsMode, strings.NewReader(content)))
	}

	assets, err := New(fs).Publish(ctx, outputURL, bucketURL)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	assert.Equal(t, "restart.dot", assets[0].Name)
	assert.Equal(t, "text/vnd.graphviz", assets[0].ContentType)
	assert.Equal(t, bucketURL+"/restart.json", assets[1].URL)
	assert.Equal(t, "application/json", assets[1].ContentType)

	for name, content := range files {
		data, err := fs.DownloadWithURL(ctx, bucketURL+"/"+name)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	}
}

func TestService_Publish_MissingOutput(t *testing.T) {
	_, err := New(afs.New()).Publish(context.Background(), "mem://localhost/publisher/missing", "mem://localhost/publisher/none")
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	testCases := []struct {
		name   string
		expect string
	}{
		{name: "doc.json", expect: "application/json"},
		{name: "doc.DOT", expect: "text/vnd.graphviz"},
		{name: "template.yaml", expect: "application/yaml"},
		{name: "script.sh", expect: "text/plain"},
		{name: "archive", expect: "application/octet-stream"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ContentType(tc.name))
		})
	}
}
