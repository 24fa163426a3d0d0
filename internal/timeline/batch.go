package timeline

import "iter"

// MaxFrameTime is the refresh interval below which consecutive events are
// merged into one frame.
const MaxFrameTime = 1.0 / 60

// Batch coalesces frames that start less than MaxFrameTime after the
// current pending frame. A merged frame keeps the time of its first event
// and the data of all merged events in their original order.
func Batch(frames iter.Seq[Frame]) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		var (
			pending Frame
			have    bool
		)

		for f := range frames {
			if !have {
				pending, have = f, true
				continue
			}
			if f.Time-pending.Time < MaxFrameTime {
				pending.Data += f.Data
				continue
			}
			if !yield(pending) {
				return
			}
			pending = f
		}

		if have {
			yield(pending)
		}
	}
}
