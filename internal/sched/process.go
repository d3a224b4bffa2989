package sched

// Process is one schedulable unit tracked through a simulation run.
// StartTime and EndTime stay nil until the process is first dispatched / completes.
type Process struct {
	PID            string `json:"pid"`
	ArrivalTime    int    `json:"arrival_time"`
	BurstTime      int    `json:"burst_time"`
	Priority       int    `json:"priority"` // lower is more urgent
	RemainingTime  int    `json:"remaining_time"`
	StartTime      *int   `json:"start_time"`
	EndTime        *int   `json:"end_time"`
	WaitingTime    int    `json:"waiting_time"`
	TurnaroundTime int    `json:"turnaround_time"`
}

// NewProcess validates the inputs and returns a fresh, unscheduled process.
func NewProcess(pid string, arrival, burst, priority int) (*Process, error) {
	if pid == "" {
		return nil, &InputError{PID: pid, Field: "pid", Reason: "must not be empty"}
	}
	if arrival < 0 {
		return nil, &InputError{PID: pid, Field: "arrival_time", Reason: "must be >= 0"}
	}
	if burst <= 0 {
		return nil, &InputError{PID: pid, Field: "burst_time", Reason: "must be > 0"}
	}

	return &Process{
		PID:           pid,
		ArrivalTime:   arrival,
		BurstTime:     burst,
		Priority:      priority,
		RemainingTime: burst,
	}, nil
}

// Completed reports whether the process has an end time.
func (p *Process) Completed() bool { return p.EndTime != nil }

// ResponseTime is the arrival-to-first-dispatch span, or 0 if never dispatched.
func (p *Process) ResponseTime() int {
	if p.StartTime == nil {
		return 0
	}
	return *p.StartTime - p.ArrivalTime
}

// Clone returns a deep copy.
func (p *Process) Clone() *Process {
	c := *p
	if p.StartTime != nil {
		v := *p.StartTime
		c.StartTime = &v
	}
	if p.EndTime != nil {
		v := *p.EndTime
		c.EndTime = &v
	}
	return &c
}

// reset returns an unscheduled copy: derived fields cleared, remaining = burst.
func (p *Process) reset() *Process {
	return &Process{
		PID:           p.PID,
		ArrivalTime:   p.ArrivalTime,
		BurstTime:     p.BurstTime,
		Priority:      p.Priority,
		RemainingTime: p.BurstTime,
	}
}

func (p *Process) markStarted(t int) {
	if p.StartTime == nil {
		p.StartTime = &t
	}
}

// finish stamps completion and derives turnaround and waiting time.
func (p *Process) finish(t int) {
	p.EndTime = &t
	p.RemainingTime = 0
	p.TurnaroundTime = t - p.ArrivalTime
	p.WaitingTime = p.TurnaroundTime - p.BurstTime
}

// Finalize derives turnaround and waiting time from externally supplied start/end
// stamps. Used for results produced outside the built-in algorithms.
func (p *Process) Finalize() {
	if p.EndTime == nil {
		p.TurnaroundTime, p.WaitingTime = 0, 0
		return
	}
	p.finish(*p.EndTime)
}

// CloneAll deep-copies a process slice.
func CloneAll(procs []*Process) []*Process {
	out := make([]*Process, len(procs))
	for i, p := range procs {
		out[i] = p.Clone()
	}
	return out
}

func snapshot(procs []*Process) []*Process {
	out := make([]*Process, len(procs))
	for i, p := range procs {
		out[i] = p.reset()
	}
	return out
}
