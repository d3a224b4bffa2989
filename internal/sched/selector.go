package sched

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// priorities count as mostly uniform when the most common value covers at least this share
	uniformPriorityShare = 0.75
	// bursts count as dispersed when stddev/mean exceeds this
	burstDispersionCV = 0.5
)

// Selection is the outcome of the intelligent-mode heuristic.
type Selection struct {
	Chosen             Algorithm
	BurstMean          float64
	BurstVariance      float64
	DistinctPriorities int
	PriorityShare      float64 // share of processes holding the most common priority
}

// Name is the label reported for the run, e.g. "Intelligent (RR)".
func (s Selection) Name() string {
	return fmt.Sprintf("%s (%s)", Intelligent, s.Chosen)
}

// Select picks a built-in algorithm from workload statistics alone.
// Mostly uniform priorities favor Round Robin, widely dispersed bursts favor
// SRTF, anything else runs non-preemptive priority.
func Select(procs []*Process) Selection {
	bursts := make([]float64, len(procs))
	priorities := make(map[int]int)
	modal := 0
	for i, p := range procs {
		bursts[i] = float64(p.BurstTime)
		priorities[p.Priority]++
		modal = max(modal, priorities[p.Priority])
	}

	sel := Selection{DistinctPriorities: len(priorities)}
	if len(procs) > 0 {
		sel.BurstMean, sel.BurstVariance = stat.PopMeanVariance(bursts, nil)
		sel.PriorityShare = float64(modal) / float64(len(procs))
	}

	switch {
	case sel.DistinctPriorities <= 1 || sel.PriorityShare >= uniformPriorityShare:
		sel.Chosen = RoundRobin
	case sel.BurstMean > 0 && math.Sqrt(sel.BurstVariance)/sel.BurstMean > burstDispersionCV:
		sel.Chosen = SJFPreemptive
	default:
		sel.Chosen = PriorityNonPreemptive
	}
	return sel
}
