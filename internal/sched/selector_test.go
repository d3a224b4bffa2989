package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func procsWith(t *testing.T, bursts, priorities []int) []*Process {
	t.Helper()
	procs := make([]*Process, len(bursts))
	for i := range bursts {
		procs[i] = mustProc(t, string(rune('A'+i)), i, bursts[i], priorities[i])
	}
	return procs
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		bursts     []int
		priorities []int
		want       Algorithm
	}{
		{name: "uniform priorities", bursts: []int{1, 20, 3, 9}, priorities: []int{2, 2, 2, 2}, want: RoundRobin},
		{name: "mostly uniform priorities", bursts: []int{4, 5, 4, 5, 4, 5, 4, 5}, priorities: []int{1, 1, 1, 1, 1, 3, 1, 3}, want: RoundRobin},
		{name: "three of four share a priority", bursts: []int{2, 9, 4, 7}, priorities: []int{1, 1, 1, 2}, want: RoundRobin},
		{name: "half share a priority", bursts: []int{4, 5, 4, 5}, priorities: []int{1, 1, 2, 3}, want: PriorityNonPreemptive},
		{name: "dispersed bursts", bursts: []int{1, 1, 20, 2}, priorities: []int{1, 2, 3, 4}, want: SJFPreemptive},
		{name: "similar bursts varied priorities", bursts: []int{4, 5, 6}, priorities: []int{1, 2, 3}, want: PriorityNonPreemptive},
		{name: "empty", want: RoundRobin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Select(procsWith(t, tt.bursts, tt.priorities))
			assert.Equal(t, tt.want, sel.Chosen)
		})
	}
}

func TestSelect_ReportsStatistics(t *testing.T) {
	sel := Select(procsWith(t, []int{1, 1, 20, 2}, []int{1, 2, 3, 4}))

	assert.InDelta(t, 6.0, sel.BurstMean, 1e-9)
	assert.InDelta(t, 65.5, sel.BurstVariance, 1e-9)
	assert.Equal(t, 4, sel.DistinctPriorities)
	assert.InDelta(t, 0.25, sel.PriorityShare, 1e-9)
	assert.Equal(t, "Intelligent (SJF-P)", sel.Name())
}

func TestSelect_IsDeterministic(t *testing.T) {
	procs := randomWorkload(t, 7, 25)
	first := Select(procs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Select(procs))
	}
}
