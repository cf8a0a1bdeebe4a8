// Package clock provides the registry timestamps.
package clock

import "time"

// NowFunc returns current time
var NowFunc = time.Now

// Now returns the current time in UTC
func Now() time.Time { return NowFunc().UTC() }

// Freeze makes Now return t and returns a restore function
func Freeze(t time.Time) (restore func()) {
	previous := NowFunc
	NowFunc = func() time.Time { return t }
	return func() { NowFunc = previous }
}
