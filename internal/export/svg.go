package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/spiralsim/internal/spiral"
)

// PathToSVG draws the grid with cell values and the visiting order as a
// polyline through cell centres. cell is the side of one cell in pixels.
func PathToSVG(tl spiral.Timeline, rows, cols int, cell float64, strokeColor string) string {
	if rows < 1 || cols < 1 {
		return ""
	}
	if cell <= 0 {
		cell = 40
	}
	if strokeColor == "" {
		strokeColor = "#6366f1"
	}

	width := float64(cols) * cell
	height := float64(rows) * cell
	grid := spiral.NewGrid(rows, cols)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0f172a"/>
<g fill="#1e293b" stroke="#475569" stroke-width="1">
`, width, height, width, height))

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f"/>
`, float64(c)*cell+1, float64(r)*cell+1, cell-2, cell-2, cell*0.1))
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="#94a3b8" font-family="monospace" font-size="%.1f" text-anchor="middle" dominant-baseline="central">
`, cell*0.35))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, y := center(spiral.Coord{Row: r, Col: c}, cell)
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f">%d</text>
`, x, y, grid.Value(r, c)))
		}
	}
	sb.WriteString("</g>\n")

	if len(tl) > 0 {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" stroke-opacity="0.8" d="M`, strokeColor, cell*0.08))
		for i, p := range tl {
			x, y := center(p, cell)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		sx, sy := center(tl[0], cell)
		ex, ey := center(tl[len(tl)-1], cell)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#22c55e"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, sx, sy, cell*0.12, ex, ey, cell*0.12, strokeColor))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func center(c spiral.Coord, cell float64) (float64, float64) {
	return float64(c.Col)*cell + cell/2, float64(c.Row)*cell + cell/2
}
