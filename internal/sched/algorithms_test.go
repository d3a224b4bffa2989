package sched

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFCFS_SampleWorkload(t *testing.T) {
	res := schedule(t, FCFS, sampleWorkload(t), 2)

	assert.Equal(t, "First Come First Serve", res.Algorithm)
	assert.Equal(t, []Segment{seg("P1", 0, 5), seg("P2", 5, 8), seg("P3", 8, 16)}, res.Timeline)

	got := byPID(res.Processes)
	for pid, want := range map[string][2]int{"P1": {0, 5}, "P2": {5, 8}, "P3": {8, 16}} {
		start, end := startEnd(t, got[pid])
		assert.Equal(t, want[0], start, "%s start", pid)
		assert.Equal(t, want[1], end, "%s end", pid)
	}
	assert.Equal(t, 0, got["P1"].WaitingTime)
	assert.Equal(t, 4, got["P2"].WaitingTime)
	assert.Equal(t, 6, got["P3"].WaitingTime)
}

func TestFCFS_TiesKeepInputOrder(t *testing.T) {
	procs := []*Process{
		mustProc(t, "B", 3, 1, 0),
		mustProc(t, "A", 0, 2, 0),
		mustProc(t, "C", 3, 1, 0),
		mustProc(t, "D", 0, 1, 0),
	}

	for i := 0; i < 3; i++ {
		res := schedule(t, FCFS, procs, 1)
		assert.Equal(t, []Segment{seg("A", 0, 2), seg("D", 2, 3), seg("B", 3, 4), seg("C", 4, 5)}, res.Timeline)
	}
}

func TestFCFS_IdleGap(t *testing.T) {
	procs := []*Process{mustProc(t, "P1", 0, 2, 0), mustProc(t, "P2", 5, 1, 0)}

	res := schedule(t, FCFS, procs, 1)

	assert.Equal(t, []Segment{seg("P1", 0, 2), seg("P2", 5, 6)}, res.Timeline)
	assert.Equal(t, 0, byPID(res.Processes)["P2"].WaitingTime)
}

func TestSJFNonPreemptive_PicksShortestAtIdleMoments(t *testing.T) {
	res := schedule(t, SJFNonPreemptive, classicWorkload(t), 1)

	// P2 and P4 tie on burst 4; P2 arrived first
	assert.Equal(t, []Segment{seg("P1", 0, 7), seg("P3", 7, 8), seg("P2", 8, 12), seg("P4", 12, 16)}, res.Timeline)
}

func TestSJFPreemptive_PreemptsOnStrictlyShorterRemaining(t *testing.T) {
	res := schedule(t, SJFPreemptive, classicWorkload(t), 1)

	assert.Equal(t, []Segment{
		seg("P1", 0, 2),
		seg("P2", 2, 4),
		seg("P3", 4, 5),
		seg("P2", 5, 7),
		seg("P4", 7, 11),
		seg("P1", 11, 16),
	}, res.Timeline)

	got := byPID(res.Processes)
	_, end := startEnd(t, got["P1"])
	assert.Equal(t, 16, end)
	assert.Equal(t, 0, *got["P1"].StartTime)
	assert.Equal(t, 9, got["P1"].WaitingTime)
}

func TestSJFPreemptive_TieKeepsRunningProcess(t *testing.T) {
	// GIVEN P2 arrives with remaining time equal to P1's
	procs := []*Process{mustProc(t, "P1", 0, 4, 0), mustProc(t, "P2", 1, 3, 0)}

	res := schedule(t, SJFPreemptive, procs, 1)

	// THEN P1 is not preempted and its run is a single segment
	assert.Equal(t, []Segment{seg("P1", 0, 4), seg("P2", 4, 7)}, res.Timeline)
}

func TestPriorityNonPreemptive(t *testing.T) {
	res := schedule(t, PriorityNonPreemptive, sampleWorkload(t), 1)

	assert.Equal(t, []Segment{seg("P1", 0, 5), seg("P3", 5, 13), seg("P2", 13, 16)}, res.Timeline)
}

func TestPriorityPreemptive(t *testing.T) {
	procs := []*Process{
		mustProc(t, "P1", 0, 5, 2),
		mustProc(t, "P2", 1, 3, 1),
		mustProc(t, "P3", 2, 2, 3),
	}

	res := schedule(t, PriorityPreemptive, procs, 1)

	assert.Equal(t, []Segment{seg("P1", 0, 1), seg("P2", 1, 4), seg("P1", 4, 8), seg("P3", 8, 10)}, res.Timeline)
	got := byPID(res.Processes)
	assert.Equal(t, 0, *got["P1"].StartTime)
	assert.Equal(t, 8, *got["P1"].EndTime)
}

func TestPriorityPreemptive_EqualPriorityDoesNotPreempt(t *testing.T) {
	procs := []*Process{mustProc(t, "P1", 0, 3, 1), mustProc(t, "P2", 1, 2, 1)}

	res := schedule(t, PriorityPreemptive, procs, 1)

	assert.Equal(t, []Segment{seg("P1", 0, 3), seg("P2", 3, 5)}, res.Timeline)
}

func TestRoundRobin_SampleWorkloadQuantum2(t *testing.T) {
	res := schedule(t, RoundRobin, sampleWorkload(t), 2)

	assert.Equal(t, "Round Robin (q=2)", res.Algorithm)
	assert.Equal(t, []Segment{
		seg("P1", 0, 2),
		seg("P2", 2, 4),
		seg("P3", 4, 6),
		seg("P1", 6, 8),
		seg("P2", 8, 9),
		seg("P3", 9, 11),
		seg("P1", 11, 12),
		seg("P3", 12, 14),
		seg("P3", 14, 16),
	}, res.Timeline)

	got := byPID(res.Processes)
	for pid, want := range map[string][2]int{"P1": {0, 12}, "P2": {2, 9}, "P3": {4, 16}} {
		start, end := startEnd(t, got[pid])
		assert.Equal(t, want[0], start, "%s start", pid)
		assert.Equal(t, want[1], end, "%s end", pid)
	}
}

func TestRoundRobin_ArrivalsQueueBeforePreemptedProcess(t *testing.T) {
	// GIVEN P2 arrives exactly when P1's slice expires
	procs := []*Process{mustProc(t, "P1", 0, 3, 0), mustProc(t, "P2", 2, 2, 0)}

	res := schedule(t, RoundRobin, procs, 2)

	// THEN P2 runs before P1 is resumed
	assert.Equal(t, []Segment{seg("P1", 0, 2), seg("P2", 2, 4), seg("P1", 4, 5)}, res.Timeline)
}

func TestMLFQ_DemotesOnQuantumExhaustion(t *testing.T) {
	res := schedule(t, MLFQ, sampleWorkload(t), 2)

	assert.Equal(t, "Multi-Level Feedback Queue (q=2/4/8)", res.Algorithm)
	assert.Equal(t, []Segment{
		seg("P1", 0, 2),
		seg("P2", 2, 4),
		seg("P3", 4, 6),
		seg("P1", 6, 9),
		seg("P2", 9, 10),
		seg("P3", 10, 14),
		seg("P3", 14, 16),
	}, res.Timeline)

	got := byPID(res.Processes)
	assert.Equal(t, 9, *got["P1"].EndTime)
	assert.Equal(t, 10, *got["P2"].EndTime)
	assert.Equal(t, 16, *got["P3"].EndTime)
}

func TestMLFQ_ExplicitLevelsStayAtLowest(t *testing.T) {
	s, err := NewScheduler(MLFQ, []int{1, 2})
	require.NoError(t, err)

	res, err := s.Schedule([]*Process{mustProc(t, "P1", 0, 6, 0)}, 5)
	require.NoError(t, err)

	// level quanta 1, 2, then 2 again at the lowest level
	assert.Equal(t, []Segment{seg("P1", 0, 1), seg("P1", 1, 3), seg("P1", 3, 5), seg("P1", 5, 6)}, res.Timeline)
}

func TestNewScheduler_RejectsBadLevels(t *testing.T) {
	for _, levels := range [][]int{{2, 2}, {4, 2}, {0, 1}} {
		_, err := NewScheduler(MLFQ, levels)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration), "levels %v", levels)
	}
}

func TestNewScheduler_RejectsNonBuiltin(t *testing.T) {
	for _, alg := range []Algorithm{Intelligent, Custom} {
		_, err := NewScheduler(alg, nil)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration), alg.String())
	}
}

func TestTimeSliced_RejectNonPositiveQuantum(t *testing.T) {
	for _, alg := range []Algorithm{RoundRobin, MLFQ} {
		s, err := NewScheduler(alg, nil)
		require.NoError(t, err)
		for _, q := range []int{0, -3} {
			_, err := s.Schedule(sampleWorkload(t), q)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "%s q=%d", alg, q)
		}
	}
}

func TestBuiltins_EmptyInput(t *testing.T) {
	for _, alg := range Builtins {
		res := schedule(t, alg, nil, 2)
		assert.Empty(t, res.Processes, alg.String())
		assert.NotNil(t, res.Timeline, alg.String())
		assert.Empty(t, res.Timeline, alg.String())
	}
}

func TestBuiltins_DoNotMutateInput(t *testing.T) {
	procs := sampleWorkload(t)
	for _, alg := range Builtins {
		schedule(t, alg, procs, 2)
	}
	for _, p := range procs {
		assert.Nil(t, p.StartTime)
		assert.Nil(t, p.EndTime)
		assert.Equal(t, p.BurstTime, p.RemainingTime)
	}
}

func TestBuiltins_Invariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		procs := randomWorkload(t, seed, 12)
		for _, alg := range Builtins {
			for _, cores := range []int{1, 3} {
				s, err := NewScheduler(alg, nil)
				require.NoError(t, err)
				res, err := Dispatch(procs, cores, s, 3)
				require.NoError(t, err)
				checkInvariants(t, procs, res)
			}
		}
	}
}

// checkInvariants asserts the properties every finalized run must satisfy.
func checkInvariants(t *testing.T, in []*Process, res *Result) {
	t.Helper()
	require.Len(t, res.Processes, len(in))

	burstSum := 0
	ran := make(map[string]int)
	for i, p := range res.Processes {
		require.Equal(t, in[i].PID, p.PID, "input order restored")
		start, end := startEnd(t, p)
		assert.GreaterOrEqual(t, start, p.ArrivalTime, p.PID)
		assert.GreaterOrEqual(t, end, start, p.PID)
		assert.Equal(t, p.TurnaroundTime, p.WaitingTime+p.BurstTime, p.PID)
		assert.Equal(t, end-p.ArrivalTime, p.TurnaroundTime, p.PID)
		assert.GreaterOrEqual(t, p.WaitingTime, 0, p.PID)
		burstSum += p.BurstTime
	}

	for core, segs := range ByCore(res.Timeline) {
		sorted := sort.SliceIsSorted(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })
		assert.True(t, sorted, "core %d sorted", core)
		for i, s := range segs {
			assert.Greater(t, s.End, s.Start)
			if i > 0 {
				assert.GreaterOrEqual(t, s.Start, segs[i-1].End, "core %d overlap", core)
			}
			ran[s.PID] += s.Len()
		}
	}
	assert.Equal(t, burstSum, BusyTicks(res.Timeline))
	for _, p := range res.Processes {
		assert.Equal(t, p.BurstTime, ran[p.PID], "ticks run for %s", p.PID)
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range append(Builtins, Intelligent, Custom) {
		got, err := ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, got)
	}

	got, err := ParseAlgorithm(" sjf-p ")
	require.NoError(t, err)
	assert.Equal(t, SJFPreemptive, got)

	_, err = ParseAlgorithm("lottery")
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}
