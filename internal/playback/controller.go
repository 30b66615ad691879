package playback

import (
	"sync"
	"time"

	"github.com/san-kum/spiralsim/internal/spiral"
	"go.uber.org/zap"
)

// DefaultDelay is the pause between automatic steps.
const DefaultDelay = 350 * time.Millisecond

type Option func(*Controller)

func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

func WithClock(clock Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns the cursor into a fixed timeline plus the run state and
// the visit log. Every command is total: when it does not apply it is a
// no-op and no subscriber is notified.
type Controller struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	rows, cols int
	delay      time.Duration
	clock      Clock
	log        *zap.SugaredLogger

	grid     *spiral.Grid
	timeline spiral.Timeline
	cursor   int
	state    RunState
	events   *EventLog

	pending Timer
	gen     uint64
	seq     uint64
	closed  bool

	subs    map[int]func(Snapshot)
	nextSub int
}

// New builds a controller for a rows x cols grid in the Idle state.
func New(rows, cols int, opts ...Option) *Controller {
	c := &Controller{
		rows:     rows,
		cols:     cols,
		delay:    DefaultDelay,
		clock:    RealClock(),
		log:      zap.NewNop().Sugar(),
		grid:     spiral.NewGrid(rows, cols),
		timeline: spiral.Generate(rows, cols),
		events:   NewEventLog(LogCapacity),
		state:    Idle,
		subs:     make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log.Debugf("playback: new %dx%d controller, %d steps, delay %v", rows, cols, len(c.timeline), c.delay)
	return c
}

func (c *Controller) Rows() int            { return c.rows }
func (c *Controller) Cols() int            { return c.cols }
func (c *Controller) Delay() time.Duration { return c.delay }

// Timeline returns the shared, read-only visiting order.
func (c *Controller) Timeline() spiral.Timeline {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeline
}

func (c *Controller) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every transition.
// Snapshots arrive in transition order. fn must not call controller
// commands synchronously. cancel returns once no delivery to fn is in
// flight, so it must not be called from inside fn.
func (c *Controller) Subscribe(fn func(Snapshot)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
		// a commit that copied fn holds notifyMu until its delivery ends
		c.notifyMu.Lock()
		c.notifyMu.Unlock()
	}
}

// Start begins auto-advance. No-op once every cell has been visited.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.closed || c.cursor == len(c.timeline) {
		c.mu.Unlock()
		return
	}
	c.state = Running
	c.armLocked()
	c.log.Debugf("playback: start at step %d", c.cursor)
	c.commit()
}

// PauseResume toggles between Running and Paused and ignores other states.
func (c *Controller) PauseResume() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	switch c.state {
	case Running:
		c.state = Paused
		c.cancelLocked()
		c.log.Debugf("playback: paused at step %d", c.cursor)
	case Paused:
		c.state = Running
		c.armLocked()
		c.log.Debugf("playback: resumed at step %d", c.cursor)
	default:
		c.mu.Unlock()
		return
	}
	c.commit()
}

// Tick advances one step. The step that reaches the end, or a tick when the
// cursor is already there, marks the run Completed from any state. The timer
// calls it only while Running; callers may use it in any state to step by hand.
func (c *Controller) Tick() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.tickLocked()
	if c.state == Running {
		c.armLocked()
	}
	c.commit()
}

// BackStep undoes one step and pauses. No-op at the first step.
func (c *Controller) BackStep() {
	c.mu.Lock()
	if c.closed || c.cursor == 0 {
		c.mu.Unlock()
		return
	}
	c.state = Paused
	c.cancelLocked()
	c.cursor--
	c.events.Pop()
	c.log.Debugf("playback: back to step %d", c.cursor)
	c.commit()
}

// Replay restarts the same timeline from the first step and runs it.
func (c *Controller) Replay() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cursor = 0
	c.events.Clear()
	c.state = Running
	c.armLocked()
	c.log.Debugf("playback: replay")
	c.commit()
}

// Reset renumbers the grid and returns to Idle at the first step. The
// timeline is kept: the dimensions cannot change, so a regenerated one
// would be identical.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	c.grid = spiral.NewGrid(c.rows, c.cols)
	c.cursor = 0
	c.events.Clear()
	c.state = Idle
	c.log.Debugf("playback: reset")
	c.commit()
}

// Close cancels any pending tick and turns every later command into a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.cancelLocked()
	c.closed = true
	c.subs = make(map[int]func(Snapshot))
	c.log.Debugf("playback: closed")
}

func (c *Controller) tickLocked() {
	if c.cursor < len(c.timeline) {
		c.events.Push(visitMessage(c.timeline[c.cursor]))
		c.cursor++
	}
	if c.cursor < len(c.timeline) {
		return
	}
	c.cancelLocked()
	if c.state != Completed {
		c.log.Debugw("playback: completed", "steps", len(c.timeline), "from", c.state.String())
	}
	c.state = Completed
}

// armLocked replaces any pending tick with a fresh one. Reaching the end
// while Running completes the run without waiting another delay.
func (c *Controller) armLocked() {
	c.cancelLocked()
	if c.cursor >= len(c.timeline) {
		c.tickLocked()
		return
	}
	gen := c.gen
	c.pending = c.clock.AfterFunc(c.delay, func() { c.fire(gen) })
}

// cancelLocked invalidates the pending tick even if its callback is already
// waiting on the lock.
func (c *Controller) cancelLocked() {
	c.gen++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.state != Running {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.tickLocked()
	if c.state == Running {
		c.armLocked()
	}
	c.commit()
}

// commit must be called with mu held; it releases mu and delivers the new
// snapshot to subscribers in order.
func (c *Controller) commit() {
	c.seq++
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Seq:     c.seq,
		Rows:    c.rows,
		Cols:    c.cols,
		Cursor:  c.cursor,
		Total:   len(c.timeline),
		State:   c.state,
		Log:     c.events.Entries(),
		Visited: c.timeline.Visited(c.cursor),
		Values:  c.grid.Values(),
	}
	s.active, s.hasActive = c.timeline.At(c.cursor)
	return s
}
