// Package playback steps a cursor through a spiral timeline under timed,
// user-interruptible control.
//
//   - [Controller]: the run/pause/back/replay/reset state machine
//   - [EventLog]: bounded newest-first visit log
//   - [Snapshot]: immutable view handed to renderers after each transition
//   - [Clock]: scheduling seam; [ManualClock] drives tests deterministically
//
// # Thread Safety
//
// All Controller methods are safe to call from any goroutine. Commands and
// timer ticks are serialized by one mutex, so a tick's log push and cursor
// increment are never observed apart. At most one tick is pending at a time
// and every state change away from Running invalidates it.
package playback
