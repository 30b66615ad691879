package spiral

import "fmt"

// Coord is a 0-indexed (row, col) grid position.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("[%d,%d]", c.Row, c.Col)
}

// Timeline is the visiting order of every grid cell. It is never mutated
// after Generate returns it.
type Timeline []Coord

func (t Timeline) Len() int { return len(t) }

// At returns the coordinate visited at step i.
func (t Timeline) At(i int) (Coord, bool) {
	if i < 0 || i >= len(t) {
		return Coord{}, false
	}
	return t[i], true
}

// Index returns the step at which c is visited, or -1.
func (t Timeline) Index(c Coord) int {
	for i, v := range t {
		if v == c {
			return i
		}
	}
	return -1
}

// Visited returns a copy of the prefix before cursor.
func (t Timeline) Visited(cursor int) []Coord {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(t) {
		cursor = len(t)
	}
	out := make([]Coord, cursor)
	copy(out, t[:cursor])
	return out
}

// Generate returns the spiral order of a rows x cols grid: top row left to
// right, right column downwards, bottom row right to left, left column
// upwards, then the same on the inner rectangle.
func Generate(rows, cols int) Timeline {
	if rows < 1 || cols < 1 {
		return Timeline{}
	}

	res := make(Timeline, 0, rows*cols)
	top, bottom := 0, rows-1
	left, right := 0, cols-1

	for top <= bottom && left <= right {
		for c := left; c <= right; c++ {
			res = append(res, Coord{Row: top, Col: c})
		}
		top++

		for r := top; r <= bottom; r++ {
			res = append(res, Coord{Row: r, Col: right})
		}
		right--

		// the remaining region may have collapsed to a single row or column
		if top <= bottom {
			for c := right; c >= left; c-- {
				res = append(res, Coord{Row: bottom, Col: c})
			}
		}
		bottom--

		if left <= right {
			for r := bottom; r >= top; r-- {
				res = append(res, Coord{Row: r, Col: left})
			}
		}
		left++
	}

	return res
}

// Ring returns the spiral layer that contains c, 0 being the outer edge.
func Ring(c Coord, rows, cols int) int {
	d := c.Row
	if v := c.Col; v < d {
		d = v
	}
	if v := rows - 1 - c.Row; v < d {
		d = v
	}
	if v := cols - 1 - c.Col; v < d {
		d = v
	}
	return d
}
