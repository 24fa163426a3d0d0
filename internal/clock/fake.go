package clock

import "time"

// Fake is a manually driven Clock. Timer callbacks run synchronously inside
// Advance and Fire, on the caller's goroutine. It is not safe for
// concurrent use.
type Fake struct {
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *Fake
	at    time.Time
	seq   int
	f     func()
	done  bool
}

func (t *fakeTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

func NewFake() *Fake {
	return &Fake{now: time.Unix(1_700_000_000, 0)}
}

func (c *Fake) Now() time.Time { return c.now }

func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &fakeTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d. Every timer that comes due on the way
// fires at exactly its scheduled instant, in schedule order, including
// timers registered by earlier callbacks.
func (c *Fake) Advance(d time.Duration) {
	target := c.now.Add(d)
	for t := c.next(target); t != nil; t = c.next(target) {
		if t.at.After(c.now) {
			c.now = t.at
		}
		c.fire(t)
	}
	c.now = target
}

// Jump moves time forward by d without firing anything, as if the process
// had been descheduled. A following Fire delivers the overdue timers late.
func (c *Fake) Jump(d time.Duration) {
	c.now = c.now.Add(d)
}

// Fire runs every timer due at the current time.
func (c *Fake) Fire() {
	for t := c.next(c.now); t != nil; t = c.next(c.now) {
		c.fire(t)
	}
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (c *Fake) Pending() int {
	return len(c.timers)
}

func (c *Fake) next(limit time.Time) *fakeTimer {
	var best *fakeTimer
	for _, t := range c.timers {
		if t.at.After(limit) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (c *Fake) fire(t *fakeTimer) {
	t.done = true
	c.remove(t)
	t.f()
}

func (c *Fake) remove(t *fakeTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}
