// Package spiral computes the layer-peeling visiting order of a rectangular
// grid.
//
//   - [Generate]: spiral order for an R x C grid
//   - [Timeline]: the immutable visiting order with lookup helpers
//   - [Grid]: cell values assigned row-major
//
// # Example
//
//	tl := spiral.Generate(3, 3)
//	// [0,0] [0,1] [0,2] [1,2] [2,2] [2,1] [2,0] [1,0] [1,1]
package spiral
