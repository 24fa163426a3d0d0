package export

import (
	"fmt"
	"html"
	"strings"
)

const (
	cellWidth  = 8.4
	cellHeight = 17.0
	fontSize   = 14.0
)

// ScreenSVG renders lines of terminal text as an SVG image of a cols x rows
// screen.
func ScreenSVG(lines []string, cols, rows int, fg, bg string) string {
	width := float64(cols) * cellWidth
	height := float64(rows) * cellHeight

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s" font-family="monospace" font-size="%.0f" xml:space="preserve">
`, width, height, width, height, bg, fg, fontSize))

	for row, line := range lines {
		if row >= rows {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		y := float64(row)*cellHeight + fontSize
		sb.WriteString(fmt.Sprintf(`<text x="0" y="%.1f" textLength="%.1f">%s</text>
`, y, float64(len([]rune(line)))*cellWidth, html.EscapeString(line)))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesSVG draws values as a line chart, evenly spaced along x.
func SeriesSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
