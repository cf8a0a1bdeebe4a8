// Package idgen generates build run and registry document identifiers.
package idgen

import "github.com/google/uuid"

// NewFunc generates identifiers; replace it with Stub in tests.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new random identifier
func New() string { return NewFunc() }

// Stub makes New return the given ids in turn, repeating the last one, and returns a restore function
func Stub(ids ...string) (restore func()) {
	previous := NewFunc
	next := 0
	NewFunc = func() string {
		if len(ids) == 0 {
			return ""
		}
		id := ids[min(next, len(ids)-1)]
		next++
		return id
	}
	return func() { NewFunc = previous }
}
