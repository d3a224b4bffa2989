package sched

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustProc(t *testing.T, pid string, arrival, burst, priority int) *Process {
	t.Helper()
	p, err := NewProcess(pid, arrival, burst, priority)
	require.NoError(t, err)
	return p
}

// sampleWorkload is P1(0,5,1), P2(1,3,2), P3(2,8,1).
func sampleWorkload(t *testing.T) []*Process {
	t.Helper()
	return []*Process{
		mustProc(t, "P1", 0, 5, 1),
		mustProc(t, "P2", 1, 3, 2),
		mustProc(t, "P3", 2, 8, 1),
	}
}

// classicWorkload is P1(0,7), P2(2,4), P3(4,1), P4(5,4).
func classicWorkload(t *testing.T) []*Process {
	t.Helper()
	return []*Process{
		mustProc(t, "P1", 0, 7, 0),
		mustProc(t, "P2", 2, 4, 0),
		mustProc(t, "P3", 4, 1, 0),
		mustProc(t, "P4", 5, 4, 0),
	}
}

func randomWorkload(t *testing.T, seed uint64, n int) []*Process {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed+1))
	procs := make([]*Process, n)
	for i := range procs {
		procs[i] = mustProc(t, fmt.Sprintf("P%d", i+1), rng.IntN(15), 1+rng.IntN(9), rng.IntN(4))
	}
	return procs
}

func schedule(t *testing.T, alg Algorithm, procs []*Process, quantum int) *Result {
	t.Helper()
	s, err := NewScheduler(alg, nil)
	require.NoError(t, err)
	res, err := s.Schedule(procs, quantum)
	require.NoError(t, err)
	return res
}

func seg(pid string, start, end int) Segment {
	return Segment{PID: pid, Start: start, End: end}
}

func byPID(procs []*Process) map[string]*Process {
	out := make(map[string]*Process, len(procs))
	for _, p := range procs {
		out[p.PID] = p
	}
	return out
}

func startEnd(t *testing.T, p *Process) (int, int) {
	t.Helper()
	require.NotNil(t, p.StartTime, "%s start", p.PID)
	require.NotNil(t, p.EndTime, "%s end", p.PID)
	return *p.StartTime, *p.EndTime
}
