// Package screen replays terminal output into a virtual terminal so the
// resulting screen can be printed as text.
package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/hinshun/vt10x"
)

const (
	DefaultCols = 80
	DefaultRows = 24
)

// Screen is a virtual terminal of fixed size.
type Screen struct {
	vt vt10x.Terminal
}

// New returns a blank screen. Non-positive sizes fall back to 80x24.
func New(cols, rows int) *Screen {
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Screen{vt: vt10x.New(vt10x.WithSize(cols, rows))}
}

// Render feeds chunks, in order, into a new screen.
func Render(cols, rows int, chunks []string) *Screen {
	s := New(cols, rows)
	for _, c := range chunks {
		s.Feed(c)
	}
	return s
}

// Feed writes a chunk of output to the terminal.
func (s *Screen) Feed(chunk string) {
	s.vt.Write([]byte(chunk))
}

func (s *Screen) Size() (cols, rows int) {
	return s.vt.Size()
}

// Cursor returns the zero-based cursor column and row.
func (s *Screen) Cursor() (x, y int) {
	s.vt.Lock()
	defer s.vt.Unlock()
	c := s.vt.Cursor()
	return c.X, c.Y
}

// Lines returns the text of every row with trailing blanks removed.
func (s *Screen) Lines() []string {
	s.vt.Lock()
	defer s.vt.Unlock()

	cols, rows := s.vt.Size()
	lines := make([]string, rows)
	var b strings.Builder
	for y := 0; y < rows; y++ {
		b.Reset()
		for x := 0; x < cols; x++ {
			ch := s.vt.Cell(x, y).Char
			if ch == 0 {
				ch = ' '
			}
			b.WriteRune(ch)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// String returns the screen text without trailing empty rows.
func (s *Screen) String() string {
	lines := s.Lines()
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// ANSI returns the screen with 256-color SGR sequences for foreground and
// background, one line per row.
func (s *Screen) ANSI() string {
	s.vt.Lock()
	defer s.vt.Unlock()

	cols, rows := s.vt.Size()
	var b strings.Builder
	for y := 0; y < rows; y++ {
		fg, bg := vt10x.DefaultFG, vt10x.DefaultBG
		for x := 0; x < cols; x++ {
			cell := s.vt.Cell(x, y)
			if cell.FG != fg || cell.BG != bg {
				b.WriteString("\x1b[0m")
				if cell.FG != vt10x.DefaultFG && cell.FG < 256 {
					fmt.Fprintf(&b, "\x1b[38;5;%dm", cell.FG)
				}
				if cell.BG != vt10x.DefaultBG && cell.BG < 256 {
					fmt.Fprintf(&b, "\x1b[48;5;%dm", cell.BG)
				}
				fg, bg = cell.FG, cell.BG
			}
			if cell.Char == 0 {
				b.WriteRune(' ')
			} else {
				b.WriteRune(cell.Char)
			}
		}
		b.WriteString("\x1b[0m")
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Plain concatenates chunks and strips every escape sequence, without
// interpreting cursor movement.
func Plain(chunks []string) string {
	return ansi.Strip(strings.Join(chunks, ""))
}
