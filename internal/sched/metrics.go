package sched

import (
	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates a finalized run. Only completed processes contribute.
type Metrics struct {
	AvgWaiting     float64 `json:"avg_waiting"`
	AvgTurnaround  float64 `json:"avg_turnaround"`
	AvgResponse    float64 `json:"avg_response"`
	Makespan       int     `json:"makespan"`
	CPUUtilization float64 `json:"cpu_utilization"` // percent
	Throughput     float64 `json:"throughput"`      // processes per tick
	Completed      int     `json:"completed"`
}

// ComputeMetrics derives aggregate statistics. It never mutates procs.
// Makespan is max(end) - min(arrival); utilization and throughput are 0 when
// the makespan is 0.
func ComputeMetrics(procs []*Process) Metrics {
	var (
		waiting, turnaround, response []float64
		burstSum                      int
		minArrival, maxEnd            int
	)
	for _, p := range procs {
		if !p.Completed() {
			continue
		}
		if len(waiting) == 0 || p.ArrivalTime < minArrival {
			minArrival = p.ArrivalTime
		}
		if len(waiting) == 0 || *p.EndTime > maxEnd {
			maxEnd = *p.EndTime
		}
		waiting = append(waiting, float64(p.WaitingTime))
		turnaround = append(turnaround, float64(p.TurnaroundTime))
		response = append(response, float64(p.ResponseTime()))
		burstSum += p.BurstTime
	}

	m := Metrics{Completed: len(waiting)}
	if m.Completed == 0 {
		return m
	}
	m.AvgWaiting = stat.Mean(waiting, nil)
	m.AvgTurnaround = stat.Mean(turnaround, nil)
	m.AvgResponse = stat.Mean(response, nil)
	m.Makespan = maxEnd - minArrival
	if m.Makespan > 0 {
		m.CPUUtilization = 100 * float64(burstSum) / float64(m.Makespan)
		m.Throughput = float64(m.Completed) / float64(m.Makespan)
	}
	return m
}
