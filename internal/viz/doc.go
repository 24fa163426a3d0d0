// Package viz is the interactive recording viewer built on Bubble Tea.
//
// The recording is replayed into a virtual terminal and shown inside a
// framed viewport with a progress bar, an output activity sparkline and
// the playback clock.
//
// Every driver call and timer wake runs inside the Bubble Tea update loop:
// timer callbacks are delivered as messages through [tea.Program.Send].
//
// # Key Bindings
//
//	Space - Pause/Resume
//	←/→   - Seek 5s back/forward
//	[/]   - Seek 10% back/forward
//	0-9   - Jump to 0%..90%
//	L     - Toggle looping
//	t     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
