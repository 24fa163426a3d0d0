package timeline

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/san-kum/castplay/internal/cast"
)

// ErrIdleTimeLimit indicates a non-positive idle time limit.
var ErrIdleTimeLimit = errors.New("timeline: idle time limit must be positive")

// Options control how a recording is turned into a frame table.
type Options struct {
	// IdleTimeLimit overrides the recording header's limit when set.
	IdleTimeLimit *float64

	// StartAt is where playback should begin.
	StartAt StartAt

	// Logger receives build statistics at debug level. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Build decodes every event of rec, batches and compresses them, and returns
// the finished table. Any decoding error aborts the build; no partial table
// is ever returned.
func Build(rec *cast.Recording, opts Options) (*Table, error) {
	limit, err := idleLimit(rec, opts)
	if err != nil {
		return nil, err
	}

	var (
		srcErr error
		events int
	)
	source := func(yield func(Frame) bool) {
		for ev, err := range rec.Events() {
			if err != nil {
				srcErr = err
				return
			}
			events++
			if !yield(Frame{Time: ev.Time, Data: ev.Data}) {
				return
			}
		}
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	batched := slices.Collect(Batch(source))
	if srcErr != nil {
		return nil, srcErr
	}
	log.Debug("batched frames", "events", events, "frames", len(batched))

	startAt := 0.0
	if !opts.StartAt.Percent {
		startAt = opts.StartAt.Value
	}
	frames, effectiveStartAt := Compress(batched, limit, startAt)

	t := &Table{
		Cols:             rec.Cols(),
		Rows:             rec.Rows(),
		Frames:           frames,
		IdleTimeLimit:    limit,
		EffectiveStartAt: effectiveStartAt,
		Events:           events,
	}
	if n := len(frames); n > 0 {
		t.Duration = frames[n-1].Time
	}
	if opts.StartAt.Percent {
		t.EffectiveStartAt = opts.StartAt.Value / 100 * t.Duration
	}

	log.Debug("built frame table",
		"version", rec.Version(),
		"events", events,
		"frames", len(frames),
		"duration", t.Duration,
		"idle_time_limit", limit,
	)
	return t, nil
}

func idleLimit(rec *cast.Recording, opts Options) (float64, error) {
	if opts.IdleTimeLimit != nil {
		if !(*opts.IdleTimeLimit > 0) {
			return 0, fmt.Errorf("%w, got %g", ErrIdleTimeLimit, *opts.IdleTimeLimit)
		}
		return *opts.IdleTimeLimit, nil
	}
	if h := rec.Header.IdleTimeLimit; h != nil && *h > 0 {
		return *h, nil
	}
	return Unlimited, nil
}
