// Package clock provides the "now" used for period windows.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant. Tests pin time with it.
type Fixed time.Time

// Now returns the pinned instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Func adapts a plain function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}
