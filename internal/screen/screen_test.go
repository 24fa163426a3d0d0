package screen

import (
	"strings"
	"testing"
)

func TestScreen_Lines(t *testing.T) {
	s := Render(20, 4, []string{"hello\r\n", "\x1b[31mworld\x1b[0m"})

	lines := s.Lines()
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	if lines[0] != "hello" {
		t.Errorf("expected hello, got %q", lines[0])
	}
	if lines[1] != "world" {
		t.Errorf("expected world, got %q", lines[1])
	}
	if s.String() != "hello\nworld" {
		t.Errorf("unexpected screen %q", s.String())
	}
}

func TestScreen_CursorMovement(t *testing.T) {
	s := Render(10, 3, []string{"abc", "\x1b[1;1H", "X"})
	if got := s.Lines()[0]; got != "Xbc" {
		t.Errorf("expected Xbc, got %q", got)
	}
	if x, y := s.Cursor(); x != 1 || y != 0 {
		t.Errorf("expected cursor at 1,0, got %d,%d", x, y)
	}
}

func TestScreen_Reset(t *testing.T) {
	s := Render(10, 3, []string{"abc\r\ndef", "\x1bc"})
	if got := s.String(); got != "" {
		t.Errorf("expected blank screen after reset, got %q", got)
	}
}

func TestScreen_DefaultSize(t *testing.T) {
	cols, rows := New(0, -1).Size()
	if cols != DefaultCols || rows != DefaultRows {
		t.Errorf("expected %dx%d, got %dx%d", DefaultCols, DefaultRows, cols, rows)
	}
}

func TestScreen_ANSI(t *testing.T) {
	s := Render(5, 2, []string{"\x1b[31mr\x1b[0m"})
	out := s.ANSI()
	if !strings.Contains(out, "\x1b[38;5;1mr") {
		t.Errorf("expected red foreground, got %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

func TestPlain(t *testing.T) {
	got := Plain([]string{"\x1b[1mbold\x1b[0m ", "text\x1b[2K"})
	if got != "bold text" {
		t.Errorf("expected %q, got %q", "bold text", got)
	}
}
