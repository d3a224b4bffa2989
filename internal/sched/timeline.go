package sched

import "github.com/sirupsen/logrus"

// Segment is one dispatched interval [Start, End) of a process on a core.
type Segment struct {
	CoreID int    `json:"core_id"`
	PID    string `json:"pid"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// Len returns the number of ticks covered.
func (s Segment) Len() int { return s.End - s.Start }

// Result is what a single scheduling call produces.
type Result struct {
	Algorithm string
	Processes []*Process
	Timeline  []Segment
}

// BusyTicks sums the length of every segment in the timeline.
func BusyTicks(timeline []Segment) int {
	total := 0
	for _, s := range timeline {
		total += s.Len()
	}
	return total
}

// ByCore groups a merged timeline by core id, preserving order.
func ByCore(timeline []Segment) map[int][]Segment {
	out := make(map[int][]Segment)
	for _, s := range timeline {
		out[s.CoreID] = append(out[s.CoreID], s)
	}
	return out
}

// timelineRecorder collects segments for a single core.
type timelineRecorder struct {
	segments []Segment
}

// record appends [start, end) for pid. A dispatch that continues the previous
// segment of the same process is merged when extend is true.
func (r *timelineRecorder) record(pid string, start, end int, extend bool) {
	if end <= start {
		return
	}
	if n := len(r.segments); extend && n > 0 {
		last := &r.segments[n-1]
		if last.PID == pid && last.End == start {
			last.End = end
			return
		}
	}
	r.segments = append(r.segments, Segment{PID: pid, Start: start, End: end})
}

// close returns the recorded segments once the core has drained.
func (r *timelineRecorder) close(clock *TickClock) []Segment {
	logrus.Tracef("sched: core drained at tick %d, %d idle ticks", clock.Now(), clock.Idle())
	return r.segments
}
