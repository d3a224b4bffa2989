package sandbox

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"schedsim/internal/sched"
)

// output is the decoded return value of customScheduler.
type output struct {
	Name      string
	Processes []scriptProcess
	Timeline  []scriptSegment
}

type scriptProcess struct {
	PID       string `json:"pid"`
	StartTime *int   `json:"start_time"`
	EndTime   *int   `json:"end_time"`
}

type scriptSegment struct {
	PID   string `json:"pid"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// UnmarshalJSON accepts both {pid, start, end} and [pid, start, end].
func (s *scriptSegment) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err == nil {
		if len(tuple) != 3 {
			return fmt.Errorf("segment tuple needs 3 elements, got %d", len(tuple))
		}
		if err := json.Unmarshal(tuple[0], &s.PID); err != nil {
			return fmt.Errorf("segment pid: %w", err)
		}
		if err := json.Unmarshal(tuple[1], &s.Start); err != nil {
			return fmt.Errorf("segment start: %w", err)
		}
		if err := json.Unmarshal(tuple[2], &s.End); err != nil {
			return fmt.Errorf("segment end: %w", err)
		}
		return nil
	}

	type plain scriptSegment
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = scriptSegment(p)
	return nil
}

func decodeOutput(val goja.Value) (*output, error) {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil, errors.New("returned nothing")
	}

	var procsRaw, nameRaw, timelineRaw any
	switch v := val.Export().(type) {
	case []any:
		if len(v) != 3 {
			return nil, fmt.Errorf("expected [processes, name, timeline], got %d elements", len(v))
		}
		procsRaw, nameRaw, timelineRaw = v[0], v[1], v[2]
	case map[string]any:
		procsRaw, nameRaw, timelineRaw = v["processes"], v["name"], v["timeline"]
	default:
		return nil, fmt.Errorf("expected array or object, got %T", v)
	}

	out := &output{}
	if nameRaw != nil {
		name, ok := nameRaw.(string)
		if !ok {
			return nil, fmt.Errorf("name must be a string, got %T", nameRaw)
		}
		out.Name = name
	}
	if err := remarshal(procsRaw, &out.Processes); err != nil {
		return nil, fmt.Errorf("processes: %w", err)
	}
	if err := remarshal(timelineRaw, &out.Timeline); err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	return out, nil
}

// remarshal converts exported JS values into typed Go values.
func remarshal(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// reconcile rebuilds finalized processes from the script output. Inputs come
// from the caller's snapshot, only start/end stamps are taken from the script.
// Segments must fall inside their process's [start_time, end_time], and a
// completed process must be covered by exactly burst_time ticks.
func (o *output) reconcile(procs []*sched.Process) (*sched.Result, error) {
	returned := make(map[string]scriptProcess, len(o.Processes))
	for _, sp := range o.Processes {
		if _, dup := returned[sp.PID]; dup {
			return nil, fmt.Errorf("process %q returned more than once", sp.PID)
		}
		returned[sp.PID] = sp
	}
	if len(returned) != len(procs) {
		return nil, fmt.Errorf("returned %d processes, expected %d", len(returned), len(procs))
	}

	byPID := make(map[string]*sched.Process, len(procs))
	finalized := make([]*sched.Process, len(procs))
	for i, in := range procs {
		sp, ok := returned[in.PID]
		if !ok {
			return nil, fmt.Errorf("process %q missing from result", in.PID)
		}

		p, err := sched.NewProcess(in.PID, in.ArrivalTime, in.BurstTime, in.Priority)
		if err != nil {
			return nil, err
		}
		if sp.StartTime != nil && *sp.StartTime < p.ArrivalTime {
			return nil, fmt.Errorf("process %q starts at %d before arrival %d", p.PID, *sp.StartTime, p.ArrivalTime)
		}
		if sp.EndTime != nil {
			if sp.StartTime == nil {
				return nil, fmt.Errorf("process %q has end_time without start_time", p.PID)
			}
			if *sp.EndTime < *sp.StartTime {
				return nil, fmt.Errorf("process %q ends at %d before start %d", p.PID, *sp.EndTime, *sp.StartTime)
			}
			if *sp.EndTime-p.ArrivalTime < p.BurstTime {
				return nil, fmt.Errorf("process %q turnaround %d is shorter than burst %d", p.PID, *sp.EndTime-p.ArrivalTime, p.BurstTime)
			}
		}
		p.StartTime, p.EndTime = sp.StartTime, sp.EndTime
		p.Finalize()
		finalized[i] = p
		byPID[p.PID] = p
	}

	timeline := make([]sched.Segment, 0, len(o.Timeline))
	busy := make(map[string]int, len(procs))
	prevEnd := 0
	for i, seg := range o.Timeline {
		p, ok := byPID[seg.PID]
		if !ok {
			return nil, fmt.Errorf("timeline[%d]: unknown process %q", i, seg.PID)
		}
		if seg.End <= seg.Start {
			return nil, fmt.Errorf("timeline[%d]: empty interval [%d, %d]", i, seg.Start, seg.End)
		}
		if seg.Start < prevEnd {
			return nil, fmt.Errorf("timeline[%d]: overlaps previous segment ending at %d", i, prevEnd)
		}
		if p.StartTime == nil || seg.Start < *p.StartTime || (p.EndTime != nil && seg.End > *p.EndTime) {
			return nil, fmt.Errorf("timeline[%d]: [%d, %d] lies outside the run of process %q", i, seg.Start, seg.End, seg.PID)
		}
		prevEnd = seg.End
		busy[seg.PID] += seg.End - seg.Start
		timeline = append(timeline, sched.Segment{PID: seg.PID, Start: seg.Start, End: seg.End})
	}

	for _, p := range finalized {
		switch {
		case p.Completed() && busy[p.PID] != p.BurstTime:
			return nil, fmt.Errorf("process %q ran %d ticks, burst is %d", p.PID, busy[p.PID], p.BurstTime)
		case busy[p.PID] > p.BurstTime:
			return nil, fmt.Errorf("process %q ran %d ticks, more than its burst %d", p.PID, busy[p.PID], p.BurstTime)
		}
	}

	name := o.Name
	if name == "" {
		name = "Custom"
	}
	return &sched.Result{Algorithm: name, Processes: finalized, Timeline: timeline}, nil
}
