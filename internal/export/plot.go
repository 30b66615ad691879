package export

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/spiralsim/internal/spiral"
)

// RingSeries returns the spiral layer of every step in tl.
func RingSeries(tl spiral.Timeline, rows, cols int) []float64 {
	out := make([]float64, len(tl))
	for i, c := range tl {
		out[i] = float64(spiral.Ring(c, rows, cols))
	}
	return out
}

// Plot charts ring depth against step number.
func Plot(tl spiral.Timeline, rows, cols, width, height int) string {
	if len(tl) == 0 {
		return ""
	}
	data := RingSeries(tl, rows, cols)
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("ring depth per step (%dx%d)", rows, cols)),
	)
}
