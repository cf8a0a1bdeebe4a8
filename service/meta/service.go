package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/ssmdoc/internal/yml"
	"gopkg.in/yaml.v3"
)

// Service loads JSON and YAML resources from any afs supported location
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// FS returns the underlying file system
func (s *Service) FS() afs.Service {
	return s.fs
}

// Options returns the storage options applied to every operation
func (s *Service) Options() []storage.Option {
	return s.options
}

// URL resolves a location relative to the base URL
func (s *Service) URL(location string) string {
	if s.baseURL == "" || url.Scheme(location, "") != "" || strings.HasPrefix(location, "/") {
		return location
	}
	return url.Join(s.baseURL, location)
}

// Exists returns true when the resource exists
func (s *Service) Exists(ctx context.Context, location string) (bool, error) {
	return s.fs.Exists(ctx, s.URL(location), s.options...)
}

// Download returns the raw resource content
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", URL, err)
	}
	return data, nil
}

// Load decodes a JSON or YAML resource into target after ${env.X} expansion.
// A *yml.Node target keeps the mapping key order of JSON resources.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	data, err := s.Download(ctx, location)
	if err != nil {
		return err
	}
	data = []byte(expandEnvExpr(string(data)))
	isJSON := strings.EqualFold(path.Ext(url.Path(location)), ".json")
	switch actual := target.(type) {
	case *yml.Node:
		if isJSON {
			node, err := yml.DecodeJSON(data)
			if err != nil {
				return fmt.Errorf("failed to decode %v: %w", location, err)
			}
			*actual = *node
			return nil
		}
		if err = yaml.Unmarshal(data, (*yaml.Node)(actual)); err != nil {
			return fmt.Errorf("failed to decode %v: %w", location, err)
		}
		*actual = *actual.Root()
		return nil
	}
	if isJSON {
		err = json.Unmarshal(data, target)
	} else {
		err = yaml.Unmarshal(data, target)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %v: %w", location, err)
	}
	return nil
}

// New creates a meta service
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, options: options}
}
