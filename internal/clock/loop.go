package clock

import (
	"context"
	"sync"
)

// Loop runs posted functions one at a time on the goroutine that calls Run.
// It is the single actor that owns a playback driver.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	once     sync.Once
	deferred []func()
}

func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Run executes posted functions in order until ctx is done or Close is
// called. Functions still queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
			for len(l.deferred) > 0 {
				next := l.deferred[0]
				l.deferred = l.deferred[1:]
				next()
			}
		}
	}
}

// Post queues fn for execution. It is a no-op once the loop has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
	case l.tasks <- fn:
	}
}

// Defer queues fn to run right after the current task, ahead of anything
// waiting in Post's queue. It never blocks and must only be called from a
// task running on the loop.
func (l *Loop) Defer(fn func()) {
	l.deferred = append(l.deferred, fn)
}

// Do runs fn on the loop and waits for it. It reports false if the loop
// stopped before fn ran.
func (l *Loop) Do(fn func()) bool {
	finished := make(chan struct{})
	l.Post(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop. It is safe to call more than once.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
