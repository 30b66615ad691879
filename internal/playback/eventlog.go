package playback

import (
	"fmt"

	"github.com/san-kum/spiralsim/internal/spiral"
)

// LogCapacity is the number of visit announcements kept for display.
const LogCapacity = 3

// EventLog keeps the most recent entries, newest first. Entries evicted by
// Push are gone for good; Pop only undoes what is still held.
type EventLog struct {
	entries  []string
	capacity int
}

func NewEventLog(capacity int) *EventLog {
	if capacity < 1 {
		capacity = LogCapacity
	}
	return &EventLog{entries: make([]string, 0, capacity+1), capacity: capacity}
}

// Push prepends entry and drops the oldest entries beyond capacity.
func (l *EventLog) Push(entry string) {
	l.entries = append(l.entries, "")
	copy(l.entries[1:], l.entries)
	l.entries[0] = entry
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// Pop removes the newest entry.
func (l *EventLog) Pop() (string, bool) {
	if len(l.entries) == 0 {
		return "", false
	}
	e := l.entries[0]
	l.entries = append(l.entries[:0], l.entries[1:]...)
	return e, true
}

func (l *EventLog) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *EventLog) Len() int      { return len(l.entries) }
func (l *EventLog) Capacity() int { return l.capacity }
func (l *EventLog) Clear()        { l.entries = l.entries[:0] }

func visitMessage(c spiral.Coord) string {
	return fmt.Sprintf("Visiting %s", c)
}
