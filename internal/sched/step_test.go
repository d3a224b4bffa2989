package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_ReplaysRoundRobin(t *testing.T) {
	res := schedule(t, RoundRobin, sampleWorkload(t), 2)
	c := NewCursor(res)

	first := c.Advance()
	assert.Equal(t, 1, first.Step)
	assert.Equal(t, 9, first.Total)
	assert.False(t, first.Done)
	assert.Equal(t, []Segment{seg("P1", 0, 2)}, first.Timeline)
	assert.Equal(t, []StatusEvent{
		{Tick: 0, Kind: StatusDispatch, PID: "P1"},
		{Tick: 2, Kind: StatusPreempt, PID: "P1", RanTicks: 2},
	}, first.Events)

	var last Frame
	for !last.Done {
		last = c.Advance()
	}
	assert.Equal(t, 9, last.Step)
	assert.Equal(t, res.Timeline, last.Timeline)
	require.Len(t, last.Events, 2)
	assert.Equal(t, StatusEvent{Tick: 16, Kind: StatusFinish, PID: "P3", RanTicks: 2}, last.Events[1])

	// advancing past the end is idempotent
	assert.Equal(t, last, c.Advance())
	assert.Equal(t, last, c.Advance())
	assert.Equal(t, last, c.Current())
}

func TestCursor_EmitsIdleEvents(t *testing.T) {
	res := schedule(t, FCFS, []*Process{mustProc(t, "P1", 0, 2, 0), mustProc(t, "P2", 5, 1, 0)}, 1)
	c := NewCursor(res)

	c.Advance()
	second := c.Advance()

	assert.True(t, second.Done)
	assert.Equal(t, []StatusEvent{
		{Tick: 2, Kind: StatusIdle, RanTicks: 3},
		{Tick: 5, Kind: StatusDispatch, PID: "P2"},
		{Tick: 6, Kind: StatusFinish, PID: "P2", RanTicks: 1},
	}, second.Events)
}

func TestCursor_MultiCoreChronological(t *testing.T) {
	s, err := NewScheduler(FCFS, nil)
	require.NoError(t, err)
	res, err := Dispatch(sampleWorkload(t), 2, s, 1)
	require.NoError(t, err)

	c := NewCursor(res)
	var order []string
	for f := c.Advance(); f.Step > 0; f = c.Advance() {
		order = append(order, f.Timeline[len(f.Timeline)-1].PID)
		if f.Done {
			break
		}
	}
	assert.Equal(t, []string{"P1", "P2", "P3"}, order)
}

func TestCursor_ResetAndEmpty(t *testing.T) {
	c := NewCursor(&Result{Timeline: []Segment{}})
	f := c.Advance()
	assert.True(t, f.Done)
	assert.Equal(t, 0, f.Step)

	c = NewCursor(schedule(t, FCFS, sampleWorkload(t), 1))
	c.Advance()
	c.Advance()
	c.Reset()
	assert.Equal(t, 0, c.Current().Step)
	assert.Empty(t, c.Current().Timeline)
	assert.Equal(t, 1, c.Advance().Step)
}
