package playback_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spiralsim/internal/playback"
)

var _ = Describe("EventLog", func() {
	var l *playback.EventLog

	BeforeEach(func() {
		l = playback.NewEventLog(playback.LogCapacity)
	})

	It("keeps the newest entry first", func() {
		l.Push("a")
		l.Push("b")
		Expect(l.Entries()).To(Equal([]string{"b", "a"}))
	})

	It("evicts the oldest entries beyond capacity", func() {
		for _, e := range []string{"a", "b", "c", "d", "e"} {
			l.Push(e)
		}
		Expect(l.Len()).To(Equal(3))
		Expect(l.Entries()).To(Equal([]string{"e", "d", "c"}))
	})

	It("pops the newest entry", func() {
		l.Push("a")
		l.Push("b")
		e, ok := l.Pop()
		Expect(ok).To(BeTrue())
		Expect(e).To(Equal("b"))
		Expect(l.Entries()).To(Equal([]string{"a"}))
	})

	It("reports an empty pop", func() {
		_, ok := l.Pop()
		Expect(ok).To(BeFalse())
	})

	It("returns copies", func() {
		l.Push("a")
		entries := l.Entries()
		entries[0] = "mutated"
		Expect(l.Entries()).To(Equal([]string{"a"}))
	})

	It("falls back to the default capacity", func() {
		Expect(playback.NewEventLog(0).Capacity()).To(Equal(playback.LogCapacity))
	})

	It("clears", func() {
		l.Push("a")
		l.Clear()
		Expect(l.Len()).To(BeZero())
	})
})
