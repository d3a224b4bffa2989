package sched

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Dispatch runs s on cores logical cores. Process i goes to core i mod cores;
// each core is scheduled independently, then processes are restored to input
// order and the per-core timelines are concatenated, tagged with their core id.
// Cross-core contention is not modeled.
func Dispatch(procs []*Process, cores int, s Scheduler, quantum int) (*Result, error) {
	if cores < 1 {
		return nil, invalidConfig("cores", "must be >= 1, got %d", cores)
	}
	seen := make(map[string]struct{}, len(procs))
	for _, p := range procs {
		if _, dup := seen[p.PID]; dup {
			return nil, &InputError{PID: p.PID, Field: "pid", Reason: "is duplicated"}
		}
		seen[p.PID] = struct{}{}
	}

	partitions := make([][]*Process, cores)
	owners := make([][]int, cores)
	for i, p := range procs {
		c := i % cores
		partitions[c] = append(partitions[c], p)
		owners[c] = append(owners[c], i)
	}

	merged := make([]*Process, len(procs))
	timeline := []Segment{}
	name := s.Name()
	for c := 0; c < cores; c++ {
		res, err := s.Schedule(partitions[c], quantum)
		if err != nil {
			return nil, fmt.Errorf("core %d: %w", c, err)
		}
		name = res.Algorithm

		byPID := make(map[string]*Process, len(res.Processes))
		for _, p := range res.Processes {
			byPID[p.PID] = p
		}
		for j, idx := range owners[c] {
			p, ok := byPID[partitions[c][j].PID]
			if !ok {
				return nil, fmt.Errorf("core %d: %s dropped process %q", c, name, partitions[c][j].PID)
			}
			merged[idx] = p
		}
		for _, seg := range res.Timeline {
			seg.CoreID = c
			timeline = append(timeline, seg)
		}
		logrus.Debugf("sched: core %d ran %d processes, %d busy ticks", c, len(partitions[c]), BusyTicks(res.Timeline))
	}

	return &Result{Algorithm: name, Processes: merged, Timeline: timeline}, nil
}
