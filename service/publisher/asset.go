package publisher

import (
	"path/filepath"
	"strings"
	"time"
)

// Asset represents a published artifact
type Asset struct {
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Size        int64     `json:"size,omitempty"`
	ModTime     time.Time `json:"modTime,omitempty"`
	ContentType string    `json:"contentType,omitempty"`
}

// ContentType returns the content type of an artifact based on its extension
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".dot", ".gv":
		return "text/vnd.graphviz"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".sh", ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
