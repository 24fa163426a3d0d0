package player

import "github.com/san-kum/castplay/internal/timeline"

func (d *Driver) pause() {
	d.cancelWake()
	d.pausedElapsed = d.ports.Clock.Now().Sub(d.startWall)
	d.state = Paused
	d.log.Debug("paused", "at", d.pausedElapsed.Seconds())
}

func (d *Driver) resume() {
	if d.state == Finished {
		d.rewind()
	}
	d.startWall = d.ports.Clock.Now().Add(-d.pausedElapsed)
	d.state = Playing
	d.log.Debug("resumed", "at", d.pausedElapsed.Seconds(), "cursor", d.cursor)
	d.scheduleNext()
}

// rewind resets the terminal and moves back to the first frame.
func (d *Driver) rewind() {
	d.ports.Feed(ResetSequence)
	d.cursor = 0
	d.elapsedVirtual = 0
	d.pausedElapsed = 0
}

// cancelWake stops the pending timer and invalidates any wake that was
// already handed to the event loop.
func (d *Driver) cancelWake() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Driver) scheduleNext() {
	frames := d.table.Frames
	if d.cursor >= len(frames) {
		d.timer = nil
		d.pausedElapsed = timeline.Seconds(d.table.Duration)
		d.state = Finished
		d.log.Debug("finished", "duration", d.table.Duration)
		d.ports.OnFinish()
		return
	}

	delay := frames[d.cursor].At() - d.ports.Clock.Now().Sub(d.startWall)
	if delay < 0 {
		delay = 0
	}
	gen := d.gen
	d.timer = d.ports.Clock.AfterFunc(delay, func() { d.wake(gen) })
}

func (d *Driver) wake(gen uint64) {
	if gen != d.gen || d.state != Playing {
		return
	}
	d.timer = nil
	d.runFrame()
}

// runFrame emits the frame at the cursor, then keeps emitting while the
// following frames are already due, so a late wake does not leave playback
// permanently behind.
func (d *Driver) runFrame() {
	frames := d.table.Frames
	caughtUp := 0
	for {
		d.emit(frames[d.cursor])
		if d.cursor >= len(frames) {
			break
		}
		if d.ports.Clock.Now().Sub(d.startWall) < frames[d.cursor].At() {
			break
		}
		caughtUp++
	}
	if caughtUp > 0 {
		d.log.Debug("caught up", "frames", caughtUp, "cursor", d.cursor)
	}
	d.scheduleNext()
}

func (d *Driver) emit(f timeline.Frame) {
	d.ports.Feed(f.Data)
	d.elapsedVirtual = f.Time
	d.cursor++
}
