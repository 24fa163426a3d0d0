package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	frame    lipgloss.Style
	title    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	hint     lipgloss.Style
	spark    lipgloss.Style
	playing  lipgloss.Style
	paused   lipgloss.Style
	finished lipgloss.Style
	err      lipgloss.Style
	bar      lipgloss.Style
	track    lipgloss.Style
	help     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border),
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		label:    lipgloss.NewStyle().Foreground(t.Muted),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		hint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		spark:    lipgloss.NewStyle().Foreground(t.Accent),
		playing:  lipgloss.NewStyle().Bold(true).Foreground(t.Playing),
		paused:   lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
		finished: lipgloss.NewStyle().Bold(true).Foreground(t.Finished),
		err:      lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		bar:      lipgloss.NewStyle().Foreground(t.Accent),
		track:    lipgloss.NewStyle().Foreground(t.Muted),
		help: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.Accent).
			Padding(0, 2),
	}
}

// progressBar renders fraction in [0, 1] as a bar of width cells.
func (s styles) progressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(fraction * float64(width))
	filled = min(max(filled, 0), width)
	return s.bar.Render(strings.Repeat("█", filled)) + s.track.Render(strings.Repeat("░", width-filled))
}

// FormatClock renders seconds as m:ss, or h:mm:ss from one hour on.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h, m, sec := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
