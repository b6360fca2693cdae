// Package animation drives the x and y reveal phases of a chart.
package animation

import "time"

// Clock supplies time and frame callbacks to an Animator.
type Clock interface {
	Now() time.Time
	// Schedule runs fn once, on the next frame.
	Schedule(fn func())
}

// FrameClock is a Clock advanced by its host. Hosts call Tick once per
// frame, typically with the frame time of their UI toolkit, and keep
// requesting frames while Pending reports true.
type FrameClock struct {
	// Invalidate, if set, is called when a callback gets scheduled so the
	// host can request a new frame.
	Invalidate func()

	now     time.Time
	pending []func()
}

// NewFrameClock returns a clock reading start until the first Tick.
func NewFrameClock(start time.Time) *FrameClock {
	return &FrameClock{now: start}
}

func (c *FrameClock) Now() time.Time { return c.now }

func (c *FrameClock) Schedule(fn func()) {
	c.pending = append(c.pending, fn)
	if c.Invalidate != nil {
		c.Invalidate()
	}
}

// Tick advances the clock to now and runs the callbacks scheduled before
// the call. Callbacks scheduled while ticking run on the next Tick.
func (c *FrameClock) Tick(now time.Time) {
	if now.After(c.now) {
		c.now = now
	}
	fns := c.pending
	c.pending = nil
	for _, fn := range fns {
		fn()
	}
}

// Pending reports whether callbacks wait for the next Tick.
func (c *FrameClock) Pending() bool { return len(c.pending) > 0 }
