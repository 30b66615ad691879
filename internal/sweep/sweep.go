// Package sweep checks traversal invariants over ranges of grid sizes.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/spiralsim/internal/spiral"
)

var (
	ErrLength    = errors.New("sweep: wrong traversal length")
	ErrOutOfGrid = errors.New("sweep: coordinate outside grid")
	ErrRevisit   = errors.New("sweep: cell visited twice")
	ErrStart     = errors.New("sweep: traversal does not start at [0,0]")
)

type Result struct {
	Rows  int
	Cols  int
	Steps int
	Last  spiral.Coord
	Rings int
	Err   error
}

// Check reports the first invariant the timeline breaks for a rows x cols grid.
func Check(tl spiral.Timeline, rows, cols int) error {
	if len(tl) != rows*cols {
		return fmt.Errorf("%w: %dx%d has %d steps, want %d", ErrLength, rows, cols, len(tl), rows*cols)
	}
	if len(tl) > 0 && tl[0] != (spiral.Coord{}) {
		return fmt.Errorf("%w: got %s", ErrStart, tl[0])
	}
	seen := make(map[spiral.Coord]bool, len(tl))
	for i, c := range tl {
		if c.Row < 0 || c.Row >= rows || c.Col < 0 || c.Col >= cols {
			return fmt.Errorf("%w: step %d at %s", ErrOutOfGrid, i, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: step %d at %s", ErrRevisit, i, c)
		}
		seen[c] = true
	}
	return nil
}

func verify(ctx context.Context, rows, cols int) Result {
	res := Result{Rows: rows, Cols: cols}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	tl := spiral.Generate(rows, cols)
	res.Steps = len(tl)
	res.Err = Check(tl, rows, cols)
	if len(tl) > 0 {
		res.Last = tl[len(tl)-1]
		res.Rings = spiral.Ring(tl[len(tl)-1], rows, cols) + 1
	}
	return res
}

// Run verifies every grid from 1x1 up to maxRows x maxCols, one goroutine
// per grid, in row-major order of size. Workers that start after ctx is
// cancelled skip their grid and Run returns ctx.Err().
func Run(ctx context.Context, maxRows, maxCols int) ([]Result, error) {
	if maxRows < 1 || maxCols < 1 {
		return nil, fmt.Errorf("sweep: invalid bounds %dx%d", maxRows, maxCols)
	}

	results := make([]Result, maxRows*maxCols)

	var wg sync.WaitGroup
	for r := 1; r <= maxRows; r++ {
		for c := 1; c <= maxCols; c++ {
			if err := ctx.Err(); err != nil {
				wg.Wait()
				return nil, err
			}
			wg.Add(1)
			go func(idx, rows, cols int) {
				defer wg.Done()
				results[idx] = verify(ctx, rows, cols)
			}((r-1)*maxCols+(c-1), r, c)
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failures filters results down to those that broke an invariant.
func Failures(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
