package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/viant/ssmdoc/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service keyed by K.
// The key of an entity is obtained from keySelector; List returns entities in key order
// and keeps only those accepted by the optional matcher for every parameter.
type MemoryStore[K cmp.Ordered, T any] struct {
	mu          sync.RWMutex
	records     map[K]*T
	keySelector dao.KeyFunc[K, T]
	matcher     func(*T, *dao.Parameter) bool
}

var _ dao.Service[string, struct{}] = (*MemoryStore[string, struct{}])(nil)

// NewMemoryStore creates a new MemoryStore
func NewMemoryStore[K cmp.Ordered, T any](keySelector dao.KeyFunc[K, T]) *MemoryStore[K, T] {
	return &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
	}
}

// WithMatcher sets the parameter matcher used by List
func (s *MemoryStore[K, T]) WithMatcher(matcher func(*T, *dao.Parameter) bool) *MemoryStore[K, T] {
	s.matcher = matcher
	return s
}

// Save stores or overwrites a record
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	var zero K
	if key == zero {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
	return nil
}

// Load returns a record by key or an error wrapping dao.ErrNotFound
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, fmt.Errorf("%v: %w", key, dao.ErrNotFound)
	}
	return v, nil
}

// Delete removes a record
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return fmt.Errorf("%v: %w", key, dao.ErrNotFound)
	}
	delete(s.records, key)
	return nil
}

// List returns the stored records matching all parameters
func (s *MemoryStore[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	out := make([]*T, 0, len(keys))
	for _, key := range keys {
		if v := s.records[key]; s.matches(v, parameters) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *MemoryStore[K, T]) matches(v *T, parameters []*dao.Parameter) bool {
	if s.matcher == nil {
		return true
	}
	for _, parameter := range parameters {
		if !s.matcher(v, parameter) {
			return false
		}
	}
	return true
}
