// Package dao defines keyed entity storage shared by the in-memory and afs backed stores
package dao

import (
	"context"
)

// KeyFunc returns the key an entity is stored under
type KeyFunc[K comparable, T any] func(entity *T) K

// Service stores entities of type T keyed by K.
// Load and Delete of a missing key return an error wrapping ErrNotFound;
// Save rejects a nil entity with ErrNilEntity and an unusable key with ErrInvalidID.
type Service[K comparable, T any] interface {
	// Save creates or replaces the entity stored under its key
	Save(ctx context.Context, entity *T) error

	Load(ctx context.Context, key K) (*T, error)

	Delete(ctx context.Context, key K) error

	// List returns the entities in key order, keeping those accepted for every parameter
	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
