package timeline

import (
	"math"
	"sort"
	"time"
)

// Frame is a chunk of terminal output scheduled at a virtual time in seconds.
type Frame struct {
	Time float64 `json:"time"`
	Data string  `json:"data"`
}

// At returns the frame time as a wall-clock offset.
func (f Frame) At() time.Duration {
	return Seconds(f.Time)
}

// Seconds converts virtual seconds to a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Table is the finalized, read-only frame table of one recording.
type Table struct {
	Cols   int     `json:"cols"`
	Rows   int     `json:"rows"`
	Frames []Frame `json:"frames"`

	// Duration is the time of the last frame after idle compression.
	Duration float64 `json:"duration"`

	// IdleTimeLimit is the applied gap cap in seconds, +Inf when unlimited.
	IdleTimeLimit float64 `json:"-"`

	// EffectiveStartAt is the requested start position translated into
	// compressed time.
	EffectiveStartAt float64 `json:"-"`

	// Events counts output events before batching.
	Events int `json:"-"`
}

// Len returns the number of frames.
func (t *Table) Len() int { return len(t.Frames) }

// Limited reports whether an idle time limit was applied.
func (t *Table) Limited() bool { return !math.IsInf(t.IdleTimeLimit, 1) }

// Poster returns the data of every frame strictly before at, in order.
func (t *Table) Poster(at float64) []string {
	poster := make([]string, 0)
	for i := 0; i < len(t.Frames) && t.Frames[i].Time < at; i++ {
		poster = append(poster, t.Frames[i].Data)
	}
	return poster
}

// Index returns the number of frames whose time is at or before at.
func (t *Table) Index(at float64) int {
	return sort.Search(len(t.Frames), func(i int) bool {
		return t.Frames[i].Time > at
	})
}
