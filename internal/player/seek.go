package player

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/castplay/internal/timeline"
)

type targetKind int

const (
	absolute targetKind = iota
	percent
	relative
	relativePercent
)

// Target is a seek destination: an absolute time, a percentage of the
// duration, or a nudge relative to the current position.
type Target struct {
	kind  targetKind
	value float64
}

var (
	// Back and Forward nudge by 5 seconds.
	Back    = Target{kind: relative, value: -5}
	Forward = Target{kind: relative, value: 5}

	// BackFar and ForwardFar nudge by a tenth of the duration.
	BackFar    = Target{kind: relativePercent, value: -10}
	ForwardFar = Target{kind: relativePercent, value: 10}
)

// At targets an absolute time in seconds.
func At(seconds float64) Target { return Target{kind: absolute, value: seconds} }

// Percent targets a fraction of the duration, 0 to 100.
func Percent(p float64) Target { return Target{kind: percent, value: p} }

// ParseTarget accepts "<<", ">>", "<<<", ">>>", "NN%", seconds and clock
// notation such as "1:30".
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "<<":
		return Back, nil
	case ">>":
		return Forward, nil
	case "<<<":
		return BackFar, nil
	case ">>>":
		return ForwardFar, nil
	case "":
		return Target{}, fmt.Errorf("%w: empty", ErrInvalidTarget)
	}

	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || !finite(v) {
			return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
		}
		return Percent(v), nil
	}

	if strings.Contains(s, ":") {
		sa, err := timeline.ParseStartAt(s)
		if err != nil {
			return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
		}
		return At(sa.Value), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
	return At(v), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Resolve returns the target time in seconds for a playback position and
// duration, clamped to [0, duration]. A NaN target resolves to current.
func (t Target) Resolve(current, duration float64) float64 {
	var v float64
	switch t.kind {
	case percent:
		v = t.value / 100 * duration
	case relative:
		v = current + t.value
	case relativePercent:
		v = current + t.value/100*duration
	default:
		v = t.value
	}
	if math.IsNaN(v) {
		v = current
	}
	return clamp(v, duration)
}

func clamp(v, duration float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), duration)
}

func (t Target) String() string {
	switch t {
	case Back:
		return "<<"
	case Forward:
		return ">>"
	case BackFar:
		return "<<<"
	case ForwardFar:
		return ">>>"
	}
	v := strconv.FormatFloat(t.value, 'f', -1, 64)
	switch t.kind {
	case percent:
		return v + "%"
	case relative:
		return fmt.Sprintf("%+gs", t.value)
	case relativePercent:
		return fmt.Sprintf("%+g%%", t.value)
	}
	return v
}

// Seek repositions playback. A playing driver keeps playing from the new
// position; a paused or finished one stays paused there.
func (d *Driver) Seek(target Target) error {
	if err := d.ready(); err != nil {
		return err
	}

	wasPlaying := d.state == Playing
	if wasPlaying {
		d.pause()
	}

	to := target.Resolve(d.pausedElapsed.Seconds(), d.table.Duration)
	d.log.Debug("seek", "target", target.String(), "to", to, "from", d.elapsedVirtual)
	d.seekTo(to)
	if d.state == Finished {
		d.state = Paused
	}

	if wasPlaying {
		d.resume()
	}
	return nil
}

func (d *Driver) seekTo(to float64) {
	if to < d.elapsedVirtual {
		d.ports.Feed(ResetSequence)
		d.cursor = 0
		d.elapsedVirtual = 0
	}

	frames := d.table.Frames
	for end := d.table.Index(to); d.cursor < end; {
		d.emit(frames[d.cursor])
	}
	d.pausedElapsed = timeline.Seconds(to)
}
