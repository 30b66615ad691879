package playback

import "github.com/san-kum/spiralsim/internal/spiral"

// Snapshot is a copy of the controller state taken right after a transition.
// Nothing in it aliases controller memory.
type Snapshot struct {
	Seq     uint64
	Rows    int
	Cols    int
	Cursor  int
	Total   int
	State   RunState
	Log     []string
	Visited []spiral.Coord
	Values  [][]int

	active    spiral.Coord
	hasActive bool
}

// Active returns the cell at the cursor, if the traversal is not finished.
func (s Snapshot) Active() (spiral.Coord, bool) {
	return s.active, s.hasActive
}

func (s Snapshot) IsActive(c spiral.Coord) bool {
	return s.hasActive && s.active == c
}

func (s Snapshot) IsVisited(c spiral.Coord) bool {
	for _, v := range s.Visited {
		if v == c {
			return true
		}
	}
	return false
}

// Progress is the visited fraction in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Total == 0 {
		return 1
	}
	return float64(s.Cursor) / float64(s.Total)
}

func (s Snapshot) Done() bool { return s.Cursor >= s.Total }
