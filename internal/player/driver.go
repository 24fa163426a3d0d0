package player

import (
	"context"
	"log/slog"
	"time"

	"github.com/san-kum/castplay/internal/cast"
	"github.com/san-kum/castplay/internal/clock"
	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/timeline"
)

// ResetSequence is written to the terminal before a backward seek replays
// from the start (RIS, full reset).
const ResetSequence = "\x1bc"

type State int

const (
	Stopped State = iota
	Playing
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Ports are the capabilities a driver needs from its host.
type Ports struct {
	// Feed receives every emitted chunk of terminal output.
	Feed func(string)

	Clock clock.Clock

	// OnFinish is called each time playback runs off the end of the table.
	OnFinish func()

	Fetcher fetch.Fetcher
	Logger  *slog.Logger
}

// Options select the recording and how its frame table is prepared.
type Options struct {
	URL   string
	Fetch fetch.Options

	// IdleTimeLimit overrides the recording header's limit when set.
	IdleTimeLimit *float64
	StartAt       timeline.StartAt
}

// Info describes a loaded recording.
type Info struct {
	Cols     int
	Rows     int
	Duration float64
}

type Driver struct {
	opts  Options
	ports Ports
	log   *slog.Logger

	table  *timeline.Table
	header cast.Header

	state          State
	cursor         int
	elapsedVirtual float64
	startWall      time.Time
	pausedElapsed  time.Duration

	timer    clock.Timer
	gen      uint64
	released bool
}

// New returns a driver in the Stopped state. Nothing is fetched until Init
// or Start. Missing ports get defaults: a discarding Feed, the real clock
// firing on the timer goroutine, fetch.New and slog.Default.
func New(opts Options, ports Ports) *Driver {
	if ports.Feed == nil {
		ports.Feed = func(string) {}
	}
	if ports.OnFinish == nil {
		ports.OnFinish = func() {}
	}
	if ports.Clock == nil {
		ports.Clock = clock.NewReal(nil)
	}
	if ports.Fetcher == nil {
		ports.Fetcher = fetch.New()
	}
	if ports.Logger == nil {
		ports.Logger = slog.Default()
	}
	return &Driver{
		opts:  opts,
		ports: ports,
		log:   ports.Logger.With("url", opts.URL),
	}
}

// Init loads the recording if needed and reports its dimensions and
// duration.
func (d *Driver) Init(ctx context.Context) (Info, error) {
	if d.released {
		return Info{}, ErrReleased
	}
	if err := d.load(ctx); err != nil {
		return Info{}, err
	}
	return Info{Cols: d.table.Cols, Rows: d.table.Rows, Duration: d.table.Duration}, nil
}

// Start loads the recording if needed, seeks to the effective start
// position and begins playing.
func (d *Driver) Start(ctx context.Context) error {
	if d.released {
		return ErrReleased
	}
	if err := d.load(ctx); err != nil {
		return err
	}
	if d.state == Playing {
		d.pause()
	}
	d.seekTo(clamp(d.table.EffectiveStartAt, d.table.Duration))
	if d.state == Finished {
		d.state = Paused
	}
	d.resume()
	return nil
}

// Stop cancels any pending wake and releases the driver. Every later call
// returns ErrReleased.
func (d *Driver) Stop() {
	if d.released {
		return
	}
	d.cancelWake()
	if d.state == Playing {
		d.pausedElapsed = d.ports.Clock.Now().Sub(d.startWall)
	}
	d.state = Stopped
	d.released = true
	d.log.Debug("playback stopped", "at", d.pausedElapsed.Seconds())
}

// PauseOrResume toggles playback and reports whether it is now playing.
// Resuming after the end replays from the beginning.
func (d *Driver) PauseOrResume() (bool, error) {
	if err := d.ready(); err != nil {
		return false, err
	}
	if d.state == Playing {
		d.pause()
		return false, nil
	}
	d.resume()
	return true, nil
}

// CurrentTime returns the playback position in seconds.
func (d *Driver) CurrentTime() float64 {
	if d.state == Playing {
		return d.ports.Clock.Now().Sub(d.startWall).Seconds()
	}
	return d.pausedElapsed.Seconds()
}

func (d *Driver) State() State { return d.state }

// Duration returns the compressed duration, or 0 before loading.
func (d *Driver) Duration() float64 {
	if d.table == nil {
		return 0
	}
	return d.table.Duration
}

// Table returns the loaded frame table, or nil before loading.
func (d *Driver) Table() *timeline.Table { return d.table }

// Header returns the header of the loaded recording.
func (d *Driver) Header() cast.Header { return d.header }

func (d *Driver) ready() error {
	if d.released {
		return ErrReleased
	}
	if d.table == nil {
		return ErrNotLoaded
	}
	return nil
}

func (d *Driver) load(ctx context.Context) error {
	if d.table != nil {
		return nil
	}

	data, err := d.ports.Fetcher.Fetch(ctx, d.opts.URL, d.opts.Fetch)
	if err != nil {
		return &LoadError{URL: d.opts.URL, Wrapped: err}
	}
	rec, err := cast.Parse(data)
	if err != nil {
		return &LoadError{URL: d.opts.URL, Wrapped: err}
	}
	table, err := timeline.Build(rec, timeline.Options{
		IdleTimeLimit: d.opts.IdleTimeLimit,
		StartAt:       d.opts.StartAt,
		Logger:        d.log,
	})
	if err != nil {
		return &LoadError{URL: d.opts.URL, Wrapped: err}
	}

	d.table = table
	d.header = rec.Header
	d.log.Info("recording loaded",
		"version", rec.Version(),
		"cols", table.Cols,
		"rows", table.Rows,
		"frames", table.Len(),
		"duration", table.Duration,
	)
	return nil
}
