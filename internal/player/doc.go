// Package player drives real-time playback of a finalized frame table.
//
// A [Driver] owns all playback state: the cursor into the table, the virtual
// time of the last emitted frame, and the wall-clock anchors used to keep
// emission on schedule. It has no locks. Every method, and every timer wake
// delivered through [Ports.Clock], must run on one goroutine; the hosts in
// this module use a [clock.Loop] or the Bubble Tea update loop for that.
//
// Frames are incremental terminal output, so a backward [Driver.Seek] writes
// [ResetSequence] and replays every frame from the beginning up to the
// target. Forward seeks emit the skipped frames immediately.
package player
