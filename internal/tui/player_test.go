package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/player"
)

const short = `{"version":2,"width":80,"height":24}
[0,"o","one "]
[0.02,"o","two "]
[0.05,"o","three"]
`

func TestPlay(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Play(ctx, Options{
		Player:  player.Options{URL: "short.cast"},
		Fetcher: fetch.Bytes(short),
		Logger:  slog.New(slog.DiscardHandler),
		Out:     &out,
	})
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, hideCursor) || !strings.HasSuffix(got, showCursor) {
		t.Errorf("expected cursor to be hidden and restored, got %q", got)
	}
	if !strings.Contains(got, "one two three") {
		t.Errorf("expected all frames in order, got %q", got)
	}
}

func TestPlay_Speed(t *testing.T) {
	data := `{"version":2,"width":80,"height":24}
[0,"o","a"]
[2,"o","b"]
`
	var out bytes.Buffer
	start := time.Now()
	err := Play(context.Background(), Options{
		Player:  player.Options{URL: "slow.cast"},
		Fetcher: fetch.Bytes(data),
		Logger:  slog.New(slog.DiscardHandler),
		Speed:   20,
		Out:     &out,
	})
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("expected 2s recording at 20x to finish quickly, took %v", elapsed)
	}
	if !strings.Contains(out.String(), "ab") {
		t.Errorf("expected both frames, got %q", out.String())
	}
}

func TestPlay_LoadError(t *testing.T) {
	err := Play(context.Background(), Options{
		Player:  player.Options{URL: "missing.cast"},
		Fetcher: fetch.Bytes("garbage"),
		Logger:  slog.New(slog.DiscardHandler),
		Out:     &bytes.Buffer{},
	})
	var le *player.LoadError
	if !errors.As(err, &le) {
		t.Errorf("expected LoadError, got %v", err)
	}
}

func TestPlay_Cancel(t *testing.T) {
	data := `{"version":2,"width":80,"height":24}
[0,"o","a"]
[60,"o","b"]
`
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Play(ctx, Options{
			Player:  player.Options{URL: "long.cast"},
			Fetcher: fetch.Bytes(data),
			Logger:  slog.New(slog.DiscardHandler),
			Out:     &bytes.Buffer{},
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean exit on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not return after cancel")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []Key
	}{
		{"space", " ", []Key{{Action: ActionToggle}}},
		{"quit", "q", []Key{{Action: ActionQuit}}},
		{"ctrl-c", "\x03", []Key{{Action: ActionQuit}}},
		{"left", "\x1b[D", []Key{{Action: ActionSeek, Target: player.Back}}},
		{"right app mode", "\x1bOC", []Key{{Action: ActionSeek, Target: player.Forward}}},
		{"brackets", "[]", []Key{
			{Action: ActionSeek, Target: player.BackFar},
			{Action: ActionSeek, Target: player.ForwardFar},
		}},
		{"digit", "7", []Key{{Action: ActionSeek, Target: player.Percent(70)}}},
		{"unknown", "zx\x1b[A", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.in))
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("key %d: expected %v, got %v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}
