// Package timeline turns decoded recording events into the immutable frame
// table that playback runs against.
//
// The pipeline is:
//
//   - [Batch]: merge events closer together than one 60 Hz refresh interval
//   - [Compress]: cap every inter-frame gap at the idle time limit
//   - [Build]: run both over a [cast.Recording] and produce a [Table]
//
// A Table is never modified after Build returns, so it can be shared between
// the playback driver and poster rendering without synchronization.
package timeline
