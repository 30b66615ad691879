package playback

type RunState int

const (
	Idle RunState = iota
	Running
	Paused
	Completed
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}
