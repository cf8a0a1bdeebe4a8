package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/ssmdoc/service/dao"
)

const recordExt = ".json"

// FSStore is a dao.Service persisting every entity as a JSON file named after its key under baseURL.
type FSStore[T any] struct {
	baseURL     string
	fs          afs.Service
	options     []storage.Option
	keySelector dao.KeyFunc[string, T]
	matcher     func(*T, *dao.Parameter) bool
	mu          sync.RWMutex
}

var _ dao.Service[string, struct{}] = (*FSStore[struct{}])(nil)

// WithMatcher sets the parameter matcher used by List
func (s *FSStore[T]) WithMatcher(matcher func(*T, *dao.Parameter) bool) *FSStore[T] {
	s.matcher = matcher
	return s
}

// Save uploads the entity JSON, replacing the previous one
func (s *FSStore[T]) Save(ctx context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	if !validKey(key) {
		return fmt.Errorf("%q: %w", key, dao.ErrInvalidID)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %v: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.recordURL(key)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data), s.options...); err != nil {
		return fmt.Errorf("failed to save %v: %w", URL, err)
	}
	return nil
}

// Load returns an entity by key or an error wrapping dao.ErrNotFound
func (s *FSStore[T]) Load(ctx context.Context, key string) (*T, error) {
	if !validKey(key) {
		return nil, fmt.Errorf("%q: %w", key, dao.ErrInvalidID)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	URL := s.recordURL(key)
	exists, err := s.fs.Exists(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to check %v: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%v: %w", key, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return s.decode(URL, data)
}

// Delete removes an entity file
func (s *FSStore[T]) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("%q: %w", key, dao.ErrInvalidID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.recordURL(key)
	exists, err := s.fs.Exists(ctx, URL, s.options...)
	if err != nil {
		return fmt.Errorf("failed to check %v: %w", URL, err)
	}
	if !exists {
		return fmt.Errorf("%v: %w", key, dao.ErrNotFound)
	}
	if err = s.fs.Delete(ctx, URL, s.options...); err != nil {
		return fmt.Errorf("failed to delete %v: %w", URL, err)
	}
	return nil
}

// List returns the stored entities matching all parameters in key order.
// A missing base location holds no entities.
func (s *FSStore[T]) List(ctx context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exists, err := s.fs.Exists(ctx, s.baseURL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to check %v: %w", s.baseURL, err)
	}
	if !exists {
		return []*T{}, nil
	}
	objects, err := s.fs.List(ctx, s.baseURL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", s.baseURL, err)
	}
	slices.SortFunc(objects, func(a, b storage.Object) int { return strings.Compare(a.Name(), b.Name()) })
	ret := make([]*T, 0, len(objects))
	for _, object := range objects {
		if object.IsDir() || path.Ext(object.Name()) != recordExt {
			continue
		}
		data, err := s.fs.Download(ctx, object, s.options...)
		if err != nil {
			return nil, fmt.Errorf("failed to read %v: %w", object.URL(), err)
		}
		v, err := s.decode(object.URL(), data)
		if err != nil {
			return nil, err
		}
		if s.matches(v, parameters) {
			ret = append(ret, v)
		}
	}
	return ret, nil
}

func (s *FSStore[T]) decode(URL string, data []byte) (*T, error) {
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	return v, nil
}

func (s *FSStore[T]) matches(v *T, parameters []*dao.Parameter) bool {
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

func (s *FSStore[T]) recordURL(key string) string {
	return url.Join(s.baseURL, key+recordExt)
}

// keys become file names
func validKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}

// NewFSStore creates a store rooted at baseURL
func NewFSStore[T any](fs afs.Service, baseURL string, keySelector dao.KeyFunc[string, T], options ...storage.Option) *FSStore[T] {
	return &FSStore[T]{
		baseURL:     strings.TrimRight(baseURL, "/"),
		fs:          fs,
		options:     options,
		keySelector: keySelector,
	}
}
