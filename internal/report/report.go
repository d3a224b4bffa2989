// Package report renders simulation results as text for the terminal.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"schedsim/internal/sched"
)

func orNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

// Results prints the per-process table with averages in the footer.
func Results(w io.Writer, algorithm string, procs []*sched.Process, m sched.Metrics) {
	_, _ = fmt.Fprintf(w, "Algorithm: %s\n", algorithm)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "Priority", "Start", "End", "Waiting", "Turnaround", "Response"})
	for _, p := range procs {
		response := "N/A"
		if p.StartTime != nil {
			response = strconv.Itoa(p.ResponseTime())
		}
		table.Append([]string{
			p.PID,
			strconv.Itoa(p.ArrivalTime),
			strconv.Itoa(p.BurstTime),
			strconv.Itoa(p.Priority),
			orNA(p.StartTime),
			orNA(p.EndTime),
			strconv.Itoa(p.WaitingTime),
			strconv.Itoa(p.TurnaroundTime),
			response,
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", m.AvgTurnaround),
		fmt.Sprintf("Average\n%.2f", m.AvgResponse)})
	table.Render()
}

// Metrics prints the aggregate statistics.
func Metrics(w io.Writer, m sched.Metrics) {
	_, _ = fmt.Fprintf(w, "Avg Waiting Time: %.2f\n", m.AvgWaiting)
	_, _ = fmt.Fprintf(w, "Avg Turnaround Time: %.2f\n", m.AvgTurnaround)
	_, _ = fmt.Fprintf(w, "Avg Response Time: %.2f\n", m.AvgResponse)
	_, _ = fmt.Fprintf(w, "Makespan: %d\n", m.Makespan)
	_, _ = fmt.Fprintf(w, "CPU Utilization: %.2f%%\n", m.CPUUtilization)
	_, _ = fmt.Fprintf(w, "Throughput: %.4f\n", m.Throughput)
}

// Gantt prints one line per core: "Core 0: |P1 0-2|P2 2-4|".
// Idle gaps are shown as "idle".
func Gantt(w io.Writer, timeline []sched.Segment) {
	byCore := sched.ByCore(timeline)
	cores := make([]int, 0, len(byCore))
	for c := range byCore {
		cores = append(cores, c)
	}
	sort.Ints(cores)

	for _, c := range cores {
		var sb strings.Builder
		prev := 0
		for _, seg := range byCore[c] {
			if seg.Start > prev {
				fmt.Fprintf(&sb, "|idle %d-%d", prev, seg.Start)
			}
			fmt.Fprintf(&sb, "|%s %d-%d", seg.PID, seg.Start, seg.End)
			prev = seg.End
		}
		sb.WriteString("|")
		_, _ = fmt.Fprintf(w, "Core %d: %s\n", c, sb.String())
	}
}

// CSV writes the timeline as core,pid,start,end rows.
func CSV(w io.Writer, timeline []sched.Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"core", "pid", "start", "end"}); err != nil {
		return err
	}
	for _, seg := range timeline {
		rec := []string{
			strconv.Itoa(seg.CoreID),
			seg.PID,
			strconv.Itoa(seg.Start),
			strconv.Itoa(seg.End),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Frame prints one step-mode frame, centering the event kind like a log column.
func Frame(w io.Writer, f sched.Frame) {
	center := func(str string, width int) string {
		spaces := (width - len(str)) / 2
		if spaces < 0 {
			spaces = 0
		}
		return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", max(0, width-(spaces+len(str))))
	}

	_, _ = fmt.Fprintf(w, "Step %d of %d\n", f.Step, f.Total)
	for _, ev := range f.Events {
		pid := ev.PID
		if pid == "" {
			pid = "-"
		}
		_, _ = fmt.Fprintf(w, "  Tick: %05d Core: %d [%s] => %s, ran %d ticks\n",
			ev.Tick, ev.CoreID, center(ev.Kind.String(), 10), pid, ev.RanTicks)
	}
}
