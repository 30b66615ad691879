package playback_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spiralsim/internal/playback"
	"github.com/san-kum/spiralsim/internal/spiral"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const delay = 350 * time.Millisecond

func visit(r, c int) string {
	return "Visiting " + spiral.Coord{Row: r, Col: c}.String()
}

var _ = Describe("Controller", func() {
	var (
		clock *playback.ManualClock
		ctrl  *playback.Controller
	)

	BeforeEach(func() {
		clock = playback.NewManualClock()
		ctrl = playback.New(5, 5, playback.WithDelay(delay), playback.WithClock(clock))
	})

	AfterEach(func() {
		ctrl.Close()
	})

	steps := func(n int) { clock.Advance(time.Duration(n) * delay) }

	It("starts idle at the first step", func() {
		s := ctrl.Snapshot()
		Expect(s.State).To(Equal(playback.Idle))
		Expect(s.Cursor).To(BeZero())
		Expect(s.Total).To(Equal(25))
		Expect(s.Log).To(BeEmpty())
		Expect(s.Visited).To(BeEmpty())
		active, ok := s.Active()
		Expect(ok).To(BeTrue())
		Expect(active).To(Equal(spiral.Coord{Row: 0, Col: 0}))
		Expect(ctrl.Delay()).To(Equal(delay))
	})

	It("uses the default delay when none is given", func() {
		c := playback.New(2, 2)
		defer c.Close()
		Expect(c.Delay()).To(Equal(playback.DefaultDelay))
	})

	Describe("Start", func() {
		It("advances one step per delay", func() {
			ctrl.Start()
			Expect(ctrl.State()).To(Equal(playback.Running))
			Expect(clock.Pending()).To(Equal(1))

			clock.Advance(delay - time.Millisecond)
			Expect(ctrl.Cursor()).To(BeZero())

			clock.Advance(time.Millisecond)
			Expect(ctrl.Cursor()).To(Equal(1))
			Expect(ctrl.Snapshot().Log).To(Equal([]string{visit(0, 0)}))

			steps(2)
			s := ctrl.Snapshot()
			Expect(s.Cursor).To(Equal(3))
			Expect(s.Log).To(Equal([]string{visit(0, 2), visit(0, 1), visit(0, 0)}))
			Expect(s.Visited).To(Equal([]spiral.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}))
		})

		It("keeps a single pending tick when called repeatedly", func() {
			ctrl.Start()
			ctrl.Start()
			ctrl.Start()
			Expect(clock.Pending()).To(Equal(1))

			steps(1)
			Expect(ctrl.Cursor()).To(Equal(1))
		})

		It("completes at the end of the timeline", func() {
			ctrl.Start()
			steps(25)
			s := ctrl.Snapshot()
			Expect(s.State).To(Equal(playback.Completed))
			Expect(s.Cursor).To(Equal(25))
			Expect(s.Done()).To(BeTrue())
			Expect(s.Progress()).To(Equal(1.0))
			_, ok := s.Active()
			Expect(ok).To(BeFalse())
			Expect(clock.Pending()).To(BeZero())
			Expect(s.Log).To(Equal([]string{visit(2, 2), visit(2, 1), visit(3, 1)}))
		})

		It("is a no-op once completed", func() {
			ctrl.Start()
			steps(25)
			before := ctrl.Snapshot()

			ctrl.Start()
			after := ctrl.Snapshot()
			Expect(after.State).To(Equal(playback.Completed))
			Expect(after.Cursor).To(Equal(25))
			Expect(after.Seq).To(Equal(before.Seq))
			Expect(clock.Pending()).To(BeZero())
		})
	})

	Describe("PauseResume", func() {
		It("ignores idle controllers", func() {
			ctrl.PauseResume()
			Expect(ctrl.State()).To(Equal(playback.Idle))
		})

		It("ignores completed controllers", func() {
			ctrl.Start()
			steps(25)
			ctrl.PauseResume()
			Expect(ctrl.State()).To(Equal(playback.Completed))
		})

		It("toggles between running and paused", func() {
			ctrl.Start()
			steps(2)

			ctrl.PauseResume()
			Expect(ctrl.State()).To(Equal(playback.Paused))
			Expect(clock.Pending()).To(BeZero())
			steps(10)
			Expect(ctrl.Cursor()).To(Equal(2))

			ctrl.PauseResume()
			Expect(ctrl.State()).To(Equal(playback.Running))
			steps(1)
			Expect(ctrl.Cursor()).To(Equal(3))
		})

		It("never lets a scheduled tick fire after pausing", func() {
			ctrl.Start()
			ctrl.PauseResume()
			steps(5)
			s := ctrl.Snapshot()
			Expect(s.Cursor).To(BeZero())
			Expect(s.Log).To(BeEmpty())
		})
	})

	Describe("Tick", func() {
		It("steps by hand without arming the timer", func() {
			ctrl.Tick()
			Expect(ctrl.Cursor()).To(Equal(1))
			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(clock.Pending()).To(BeZero())
		})

		It("re-arms instead of stacking while running", func() {
			ctrl.Start()
			clock.Advance(delay / 2)
			ctrl.Tick()
			Expect(clock.Pending()).To(Equal(1))
			Expect(ctrl.Cursor()).To(Equal(1))

			clock.Advance(delay / 2)
			Expect(ctrl.Cursor()).To(Equal(1))
			clock.Advance(delay / 2)
			Expect(ctrl.Cursor()).To(Equal(2))
		})

		It("completes when stepping by hand from idle reaches the end", func() {
			for i := 0; i < 24; i++ {
				ctrl.Tick()
			}
			Expect(ctrl.State()).To(Equal(playback.Idle))

			ctrl.Tick()
			s := ctrl.Snapshot()
			Expect(s.State).To(Equal(playback.Completed))
			Expect(s.Cursor).To(Equal(25))
			Expect(s.Log[0]).To(Equal(visit(2, 2)))

			ctrl.Tick()
			Expect(ctrl.Cursor()).To(Equal(25))
			Expect(ctrl.State()).To(Equal(playback.Completed))
		})

		It("completes when stepping by hand from paused reaches the end", func() {
			ctrl.Tick()
			ctrl.BackStep()
			Expect(ctrl.State()).To(Equal(playback.Paused))

			for i := 0; i < 25; i++ {
				ctrl.Tick()
			}
			Expect(ctrl.State()).To(Equal(playback.Completed))
			Expect(clock.Pending()).To(BeZero())

			ctrl.Start()
			Expect(ctrl.State()).To(Equal(playback.Completed))
			ctrl.PauseResume()
			Expect(ctrl.State()).To(Equal(playback.Completed))
		})

		It("completes a tiny grid by hand", func() {
			small := playback.New(2, 2, playback.WithClock(clock))
			defer small.Close()
			for i := 0; i < 4; i++ {
				small.Tick()
			}
			Expect(small.Cursor()).To(Equal(4))
			Expect(small.State()).To(Equal(playback.Completed))
		})
	})

	Describe("BackStep", func() {
		It("is a no-op at the first step", func() {
			ctrl.BackStep()
			Expect(ctrl.State()).To(Equal(playback.Idle))
			Expect(ctrl.Cursor()).To(BeZero())
		})

		It("pauses and cancels the pending tick", func() {
			ctrl.Start()
			steps(3)
			ctrl.BackStep()
			s := ctrl.Snapshot()
			Expect(s.State).To(Equal(playback.Paused))
			Expect(s.Cursor).To(Equal(2))
			Expect(s.Log).To(Equal([]string{visit(0, 1), visit(0, 0)}))
			Expect(clock.Pending()).To(BeZero())

			steps(5)
			Expect(ctrl.Cursor()).To(Equal(2))
		})

		It("round-trips with forward ticks inside the log capacity", func() {
			ctrl.Tick()
			before := ctrl.Snapshot()

			ctrl.Tick()
			ctrl.Tick()
			ctrl.BackStep()
			ctrl.BackStep()

			after := ctrl.Snapshot()
			Expect(after.Cursor).To(Equal(before.Cursor))
			Expect(after.Log).To(Equal(before.Log))
			Expect(after.Visited).To(Equal(before.Visited))
		})

		It("cannot restore entries already evicted from the log", func() {
			for i := 0; i < 5; i++ {
				ctrl.Tick()
			}
			Expect(ctrl.Snapshot().Log).To(Equal([]string{visit(0, 4), visit(0, 3), visit(0, 2)}))

			ctrl.BackStep()
			ctrl.BackStep()
			s := ctrl.Snapshot()
			Expect(s.Cursor).To(Equal(3))
			Expect(s.Log).To(Equal([]string{visit(0, 2)}))

			ctrl.BackStep()
			s = ctrl.Snapshot()
			Expect(s.Cursor).To(Equal(2))
			Expect(s.Log).To(BeEmpty())
			Expect(s.Visited).To(HaveLen(2))
		})

		It("lets a completed run be resumed", func() {
			ctrl.Start()
			steps(25)
			ctrl.BackStep()
			Expect(ctrl.State()).To(Equal(playback.Paused))

			ctrl.PauseResume()
			steps(1)
			Expect(ctrl.State()).To(Equal(playback.Completed))
			Expect(ctrl.Cursor()).To(Equal(25))
		})
	})

	Describe("Replay", func() {
		It("restarts the same timeline", func() {
			tl := ctrl.Timeline()
			ctrl.Start()
			steps(7)

			ctrl.Replay()
			s := ctrl.Snapshot()
			Expect(s.Cursor).To(BeZero())
			Expect(s.State).To(Equal(playback.Running))
			Expect(s.Log).To(BeEmpty())
			Expect(clock.Pending()).To(Equal(1))

			again := ctrl.Timeline()
			Expect(again).To(Equal(tl))
			Expect(&again[0]).To(BeIdenticalTo(&tl[0]))

			steps(1)
			Expect(ctrl.Cursor()).To(Equal(1))
		})

		It("runs again after completion", func() {
			ctrl.Start()
			steps(25)
			ctrl.Replay()
			Expect(ctrl.State()).To(Equal(playback.Running))
			steps(25)
			Expect(ctrl.State()).To(Equal(playback.Completed))
		})

		It("drops the tick scheduled before the replay", func() {
			ctrl.Start()
			clock.Advance(delay - time.Millisecond)
			ctrl.Replay()
			clock.Advance(time.Millisecond)
			Expect(ctrl.Cursor()).To(BeZero())
			clock.Advance(delay)
			Expect(ctrl.Cursor()).To(Equal(1))
		})
	})

	Describe("Reset", func() {
		DescribeTable("always returns to idle at the first step",
			func(prepare func()) {
				prepare()
				ctrl.Reset()
				s := ctrl.Snapshot()
				Expect(s.State).To(Equal(playback.Idle))
				Expect(s.Cursor).To(BeZero())
				Expect(s.Log).To(BeEmpty())
				Expect(s.Values[0]).To(Equal([]int{1, 2, 3, 4, 5}))
				Expect(clock.Pending()).To(BeZero())

				steps(5)
				Expect(ctrl.Cursor()).To(BeZero())
			},
			Entry("from idle", func() {}),
			Entry("while running", func() { ctrl.Start(); steps(4) }),
			Entry("while paused", func() { ctrl.Start(); steps(4); ctrl.PauseResume() }),
			Entry("after completion", func() { ctrl.Start(); steps(25) }),
		)
	})

	Describe("Close", func() {
		It("cancels the pending tick and ignores later commands", func() {
			ctrl.Start()
			ctrl.Close()
			Expect(clock.Pending()).To(BeZero())

			ctrl.Replay()
			ctrl.Tick()
			steps(3)
			Expect(ctrl.Cursor()).To(BeZero())
		})
	})

	Describe("Subscribe", func() {
		It("delivers snapshots in transition order", func() {
			var got []playback.Snapshot
			cancel := ctrl.Subscribe(func(s playback.Snapshot) { got = append(got, s) })

			ctrl.Start()
			steps(2)
			ctrl.PauseResume()
			ctrl.BackStep()

			Expect(got).To(HaveLen(5))
			for i := 1; i < len(got); i++ {
				Expect(got[i].Seq).To(BeNumerically(">", got[i-1].Seq))
			}
			Expect(got[0].State).To(Equal(playback.Running))
			Expect(got[2].Cursor).To(Equal(2))
			Expect(got[3].State).To(Equal(playback.Paused))
			Expect(got[4].Cursor).To(Equal(1))

			cancel()
			ctrl.Tick()
			Expect(got).To(HaveLen(5))
		})

		It("skips no-op commands", func() {
			calls := 0
			ctrl.Subscribe(func(playback.Snapshot) { calls++ })
			ctrl.PauseResume()
			ctrl.BackStep()
			Expect(calls).To(BeZero())
		})

		It("hands out copies", func() {
			var last playback.Snapshot
			ctrl.Subscribe(func(s playback.Snapshot) { last = s })
			ctrl.Tick()
			last.Log[0] = "mutated"
			last.Values[0][0] = -1
			s := ctrl.Snapshot()
			Expect(s.Log[0]).To(Equal(visit(0, 0)))
			Expect(s.Values[0][0]).To(Equal(1))
		})
	})

	Describe("snapshot invariants", func() {
		It("derives visited cells from the cursor", func() {
			tl := ctrl.Timeline()
			ops := []func(){ctrl.Tick, ctrl.Tick, ctrl.Tick, ctrl.BackStep, ctrl.Tick, ctrl.Tick, ctrl.BackStep, ctrl.BackStep}
			for _, op := range ops {
				op()
				s := ctrl.Snapshot()
				Expect(s.Visited).To(Equal([]spiral.Coord(tl[:s.Cursor])))
				Expect(s.IsVisited(tl[0])).To(Equal(s.Cursor > 0))
				Expect(s.IsActive(tl[s.Cursor])).To(BeTrue())
			}
		})
	})
})

var _ = Describe("Controller logging", func() {
	It("records transitions at debug level", func() {
		core, logs := observer.New(zapcore.DebugLevel)
		clock := playback.NewManualClock()
		ctrl := playback.New(1, 2, playback.WithClock(clock), playback.WithLogger(zap.New(core).Sugar()))
		defer ctrl.Close()

		ctrl.Start()
		clock.Advance(2 * playback.DefaultDelay)
		Expect(ctrl.State()).To(Equal(playback.Completed))

		Expect(logs.FilterMessageSnippet("start at step 0").Len()).To(Equal(1))
		done := logs.FilterMessage("playback: completed").All()
		Expect(done).To(HaveLen(1))
		Expect(done[0].ContextMap()).To(HaveKeyWithValue("steps", int64(2)))
		Expect(done[0].ContextMap()).To(HaveKeyWithValue("from", "running"))
	})

	It("falls back to a no-op logger", func() {
		ctrl := playback.New(2, 2, playback.WithLogger(nil))
		defer ctrl.Close()
		Expect(func() { ctrl.Tick() }).NotTo(Panic())
	})
})

var _ = Describe("Controller on the real clock", func() {
	It("runs a small grid to completion", func() {
		ctrl := playback.New(2, 3, playback.WithDelay(2*time.Millisecond))
		defer ctrl.Close()

		ctrl.Start()
		Eventually(ctrl.State, time.Second, 5*time.Millisecond).Should(Equal(playback.Completed))
		Expect(ctrl.Cursor()).To(Equal(6))
	})

	It("keeps the cursor in range under concurrent commands", func() {
		ctrl := playback.New(4, 4, playback.WithDelay(time.Millisecond))
		defer ctrl.Close()

		var wg sync.WaitGroup
		cmds := []func(){ctrl.Start, ctrl.PauseResume, ctrl.BackStep, ctrl.Tick, ctrl.Replay, ctrl.Reset}
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func(w int) {
				defer GinkgoRecover()
				defer wg.Done()
				for i := 0; i < 200; i++ {
					cmds[(i+w)%len(cmds)]()
					s := ctrl.Snapshot()
					Expect(s.Cursor).To(BeNumerically(">=", 0))
					Expect(s.Cursor).To(BeNumerically("<=", s.Total))
					Expect(s.Visited).To(HaveLen(s.Cursor))
				}
			}(w)
		}
		wg.Wait()
	})
})
