// Package clock provides the wall-clock and single-shot timer capability the
// playback driver is built on.
//
// The driver has no locks of its own. [Real] therefore never runs a timer
// callback on the timer goroutine; it hands the callback to a post function,
// which must deliver it to the same event loop that issues every other
// driver call. [Loop] is such an event loop. [Fake] runs callbacks
// synchronously from [Fake.Advance] for deterministic tests.
package clock

import "time"

// Clock is a wall-clock source plus a single-shot timer factory.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending wake that can be cancelled.
type Timer interface {
	// Stop prevents the callback from being posted. It reports whether the
	// call stopped the timer before it fired.
	Stop() bool
}

// Real is a Clock backed by the runtime timer.
type Real struct {
	post func(func())
}

// NewReal returns a real clock that delivers every timer callback through
// post. A nil post runs callbacks directly on the timer goroutine.
func NewReal(post func(func())) *Real {
	return &Real{post: post}
}

func (c *Real) Now() time.Time { return time.Now() }

func (c *Real) AfterFunc(d time.Duration, f func()) Timer {
	if c.post == nil {
		return time.AfterFunc(d, f)
	}
	return time.AfterFunc(d, func() { c.post(f) })
}
