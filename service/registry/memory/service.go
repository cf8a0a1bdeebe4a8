package memory

import (
	"github.com/viant/ssmdoc/service/dao/store"
	"github.com/viant/ssmdoc/service/registry"
)

// Service is an in-memory document registry; its state lives as long as the process
type Service struct {
	*registry.Store
}

var _ registry.Service = (*Service)(nil)

// New creates an in-memory registry
func New() *Service {
	records := store.NewMemoryStore[string, registry.Record](registry.RecordKey).
		WithMatcher(registry.MatchRecord)
	return &Service{Store: registry.NewStore(records)}
}
