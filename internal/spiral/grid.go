package spiral

// Grid holds the display value of every cell, stored row-major.
type Grid struct {
	rows, cols int
	vals       []int
}

// NewGrid numbers cells 1..rows*cols in row-major order.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g := &Grid{rows: rows, cols: cols, vals: make([]int, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.vals[r*cols+c] = r*cols + c + 1
		}
	}
	return g
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Value returns the cell value, or 0 outside the grid.
func (g *Grid) Value(r, c int) int {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return 0
	}
	return g.vals[r*g.cols+c]
}

// Values returns a copy of the cell values as a matrix.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.cols)
		copy(out[r], g.vals[r*g.cols:(r+1)*g.cols])
	}
	return out
}
