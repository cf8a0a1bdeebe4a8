// Package fs provides a document registry persisted as one JSON file per document
package fs

import (
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/ssmdoc/service/dao/store"
	"github.com/viant/ssmdoc/service/registry"
)

// Service is a document registry stored under a base URL, so versions and sharing survive between runs
type Service struct {
	*registry.Store
	baseURL string
}

var _ registry.Service = (*Service)(nil)

// BaseURL returns the registry location
func (s *Service) BaseURL() string {
	return s.baseURL
}

// New creates a registry rooted at baseURL
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	records := store.NewFSStore[registry.Record](fs, baseURL, registry.RecordKey, options...).
		WithMatcher(registry.MatchRecord)
	return &Service{Store: registry.NewStore(records), baseURL: baseURL}
}
