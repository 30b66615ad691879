// Package viz is the terminal front end for spiral playback, built on
// Bubble Tea and Lip Gloss.
//
//   - [Player]: renders one session and maps keys to controller commands
//   - [Menu]: preset picker that opens a Player
//   - [Theme]: palettes for active, visited and unvisited cells
//
// The view never reads controller internals. It subscribes to the
// controller and redraws from the snapshots it receives.
//
// # Key Bindings
//
//	s      - Start
//	Space  - Pause/Resume
//	← / b  - Back one step (pauses)
//	→ / n  - Step forward by hand
//	r      - Replay from the first cell
//	x      - Reset
//	t      - Cycle themes
//	?      - Toggle help
//	q      - Quit
package viz
