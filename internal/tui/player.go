// Package tui plays recordings straight to the terminal.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/san-kum/castplay/internal/clock"
	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/player"
)

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
	resetAttrs = "\033[0m"
)

type Options struct {
	Player  player.Options
	Fetcher fetch.Fetcher
	Logger  *slog.Logger

	// Speed multiplies playback speed; 0 means 1.
	Speed float64

	// Loop restarts playback whenever it finishes.
	Loop bool

	// In supplies keyboard controls. Controls are disabled when In is nil
	// or not a terminal.
	In  *os.File
	Out io.Writer
}

// Play runs one recording to completion, or until q is pressed or ctx is
// done.
func Play(ctx context.Context, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	loop := clock.NewLoop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var clk clock.Clock = clock.NewReal(loop.Post)
	if opts.Speed > 0 && opts.Speed != 1 {
		clk = clock.NewScaled(clk, opts.Speed)
	}

	done := make(chan struct{})
	finished := false
	var drv *player.Driver
	drv = player.New(opts.Player, player.Ports{
		Feed:  func(s string) { io.WriteString(out, s) },
		Clock: clk,
		OnFinish: func() {
			if opts.Loop && drv.Duration() > 0 {
				loop.Defer(func() { drv.PauseOrResume() })
				return
			}
			if !finished {
				finished = true
				close(done)
			}
		},
		Fetcher: opts.Fetcher,
		Logger:  log,
	})

	info, err := drv.Init(ctx)
	if err != nil {
		return err
	}
	warnSize(out, info, log)

	go loop.Run(ctx)
	defer loop.Close()

	if opts.In != nil && term.IsTerminal(int(opts.In.Fd())) {
		fd := int(opts.In.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("setting raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)
		go readKeys(opts.In, loop, drv, cancel, log)
	}

	io.WriteString(out, hideCursor)
	defer io.WriteString(out, resetAttrs+showCursor)

	if !loop.Do(func() { err = drv.Start(ctx) }) {
		return ctx.Err()
	}
	if err != nil {
		return err
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
	loop.Do(drv.Stop)
	return nil
}

func readKeys(in io.Reader, loop *clock.Loop, drv *player.Driver, quit func(), log *slog.Logger) {
	buf := make([]byte, 16)
	for {
		n, err := in.Read(buf)
		if err != nil {
			return
		}
		for _, k := range Decode(buf[:n]) {
			switch k.Action {
			case ActionQuit:
				quit()
				return
			case ActionToggle:
				loop.Post(func() {
					if _, err := drv.PauseOrResume(); err != nil {
						log.Warn("pause/resume failed", "err", err)
					}
				})
			case ActionSeek:
				loop.Post(func() {
					if err := drv.Seek(k.Target); err != nil {
						log.Warn("seek failed", "target", k.Target.String(), "err", err)
					}
				})
			}
		}
	}
}

// warnSize logs when the output terminal is smaller than the recording.
func warnSize(out io.Writer, info player.Info, log *slog.Logger) {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return
	}
	if cols < info.Cols || rows < info.Rows {
		log.Warn("terminal smaller than recording",
			"terminal", fmt.Sprintf("%dx%d", cols, rows),
			"recording", fmt.Sprintf("%dx%d", info.Cols, info.Rows),
		)
	}
}
