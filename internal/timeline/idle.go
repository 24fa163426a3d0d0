package timeline

import "math"

// Unlimited disables idle compression.
var Unlimited = math.Inf(1)

// Compress shifts frame times so that no gap between consecutive frames
// exceeds idleLimit seconds. Every excess is carried forward to all later
// frames. startAt is a position in original recording time; the returned
// effective start is the same position in compressed time, so a start that
// falls inside a shortened gap lands on the right frame.
//
// Frames are never reordered and their data is never changed.
func Compress(frames []Frame, idleLimit, startAt float64) ([]Frame, float64) {
	out := make([]Frame, len(frames))
	effectiveStartAt := startAt
	prevTime := 0.0
	shift := 0.0

	for i, f := range frames {
		excess := (f.Time - prevTime) - idleLimit
		if excess > 0 {
			shift += excess
			if f.Time < startAt {
				effectiveStartAt -= excess
			}
		}
		prevTime = f.Time
		out[i] = Frame{Time: f.Time - shift, Data: f.Data}
	}

	return out, effectiveStartAt
}
