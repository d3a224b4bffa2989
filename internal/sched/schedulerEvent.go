// internal/sched/schedulerEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusDispatch
	StatusPreempt
	StatusFinish
)

// StatusEvent describes one change on a core, derived from the timeline.
type StatusEvent struct {
	Tick     int
	CoreID   int
	Kind     StatusKind
	PID      string
	RanTicks int
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}
