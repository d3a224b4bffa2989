package sched

import "sort"

// Frame is one step of a replay: the timeline revealed so far and the events
// produced by the newest segment.
type Frame struct {
	Step     int
	Total    int
	Timeline []Segment
	Events   []StatusEvent
	Done     bool
}

// Cursor replays a completed run one segment at a time, in chronological order.
// The run itself is fully computed before the cursor exists.
type Cursor struct {
	result *Result
	order  []Segment
	events [][]StatusEvent
	step   int
	last   Frame
}

// NewCursor prepares a replay of res.
func NewCursor(res *Result) *Cursor {
	order := make([]Segment, len(res.Timeline))
	copy(order, res.Timeline)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Start != order[j].Start {
			return order[i].Start < order[j].Start
		}
		return order[i].CoreID < order[j].CoreID
	})

	ends := make(map[string]int, len(res.Processes))
	for _, p := range res.Processes {
		if p.EndTime != nil {
			ends[p.PID] = *p.EndTime
		}
	}

	events := make([][]StatusEvent, len(order))
	lastEnd := make(map[int]int)
	for i, seg := range order {
		var evs []StatusEvent
		if gap := seg.Start - lastEnd[seg.CoreID]; gap > 0 {
			evs = append(evs, StatusEvent{Tick: lastEnd[seg.CoreID], CoreID: seg.CoreID, Kind: StatusIdle, RanTicks: gap})
		}
		evs = append(evs, StatusEvent{Tick: seg.Start, CoreID: seg.CoreID, Kind: StatusDispatch, PID: seg.PID})

		kind := StatusPreempt
		if end, ok := ends[seg.PID]; ok && end == seg.End {
			kind = StatusFinish
		}
		evs = append(evs, StatusEvent{Tick: seg.End, CoreID: seg.CoreID, Kind: kind, PID: seg.PID, RanTicks: seg.Len()})

		events[i] = evs
		if seg.End > lastEnd[seg.CoreID] {
			lastEnd[seg.CoreID] = seg.End
		}
	}

	c := &Cursor{result: res, order: order, events: events}
	c.Reset()
	return c
}

// Result returns the run being replayed.
func (c *Cursor) Result() *Result { return c.result }

// Current returns the latest frame without advancing.
func (c *Cursor) Current() Frame { return c.last }

// Reset rewinds the replay to step 0.
func (c *Cursor) Reset() {
	c.step = 0
	c.last = Frame{Total: len(c.order), Timeline: []Segment{}, Done: len(c.order) == 0}
}

// Advance reveals the next segment. Once every segment is revealed, further
// calls return the final frame unchanged.
func (c *Cursor) Advance() Frame {
	if c.step >= len(c.order) {
		c.last.Done = true
		return c.last
	}
	c.step++
	c.last = Frame{
		Step:     c.step,
		Total:    len(c.order),
		Timeline: c.order[:c.step:c.step],
		Events:   c.events[c.step-1],
		Done:     c.step == len(c.order),
	}
	return c.last
}
