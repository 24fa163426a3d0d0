package clock

import "time"

// Scaled runs a Clock faster or slower: with factor 2, one real second
// reads as two on Now and timers fire after half their duration.
type Scaled struct {
	base   Clock
	factor float64
	origin time.Time
}

// NewScaled wraps base. A non-positive factor is treated as 1.
func NewScaled(base Clock, factor float64) *Scaled {
	if factor <= 0 {
		factor = 1
	}
	return &Scaled{base: base, factor: factor, origin: base.Now()}
}

func (c *Scaled) Now() time.Time {
	elapsed := c.base.Now().Sub(c.origin)
	return c.origin.Add(time.Duration(float64(elapsed) * c.factor))
}

func (c *Scaled) AfterFunc(d time.Duration, f func()) Timer {
	return c.base.AfterFunc(time.Duration(float64(d)/c.factor), f)
}
