// Package analysis summarizes how output is distributed over a recording.
//
//   - [Activity]: bytes of output per fixed-width time bucket
//   - [Summarize]: frame, byte and gap statistics
//   - [Sparkline]: one-line block chart of a series
//
// # Finding a good idle limit
//
// The gap statistics show how much time long pauses take up:
//
//	s := analysis.Summarize(table.Frames, 2)
//	fmt.Printf("%d pauses over 2s, %.1fs idle\n", s.IdleGaps, s.IdleTime)
package analysis
