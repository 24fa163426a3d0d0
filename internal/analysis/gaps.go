package analysis

import (
	"github.com/samber/lo"

	"github.com/san-kum/castplay/internal/timeline"
)

// Summary describes the pacing of a frame table.
type Summary struct {
	Frames   int
	Bytes    int
	Duration float64

	MeanGap  float64
	MaxGap   float64
	MaxGapAt float64 // time of the frame that ends the longest gap

	// IdleGaps counts gaps longer than the threshold passed to Summarize;
	// IdleTime is the time those gaps spend beyond it.
	IdleGaps int
	IdleTime float64
}

// Summarize computes Summary for frames. Gaps are measured from time 0 to
// the first frame and between consecutive frames.
func Summarize(frames []timeline.Frame, idleThreshold float64) Summary {
	s := Summary{
		Frames: len(frames),
		Bytes:  lo.SumBy(frames, func(f timeline.Frame) int { return len(f.Data) }),
	}
	if len(frames) == 0 {
		return s
	}
	s.Duration = frames[len(frames)-1].Time

	prev := 0.0
	for _, f := range frames {
		gap := f.Time - prev
		if gap > s.MaxGap {
			s.MaxGap = gap
			s.MaxGapAt = f.Time
		}
		if gap > idleThreshold {
			s.IdleGaps++
			s.IdleTime += gap - idleThreshold
		}
		prev = f.Time
	}
	s.MeanGap = s.Duration / float64(len(frames))
	return s
}
