// internal/sched/scheduler.go

package sched

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Algorithm identifies a scheduling discipline.
type Algorithm int

const (
	FCFS Algorithm = iota
	SJFNonPreemptive
	SJFPreemptive
	PriorityNonPreemptive
	PriorityPreemptive
	RoundRobin
	MLFQ
	Intelligent
	Custom
)

var algorithmIDs = map[Algorithm]string{
	FCFS:                  "FCFS",
	SJFNonPreemptive:      "SJF-NP",
	SJFPreemptive:         "SJF-P",
	PriorityNonPreemptive: "PR-NP",
	PriorityPreemptive:    "PR-P",
	RoundRobin:            "RR",
	MLFQ:                  "MLFQ",
	Intelligent:           "Intelligent",
	Custom:                "Custom",
}

// Builtins lists the algorithms implemented natively, in menu order.
var Builtins = []Algorithm{FCFS, SJFNonPreemptive, SJFPreemptive, PriorityNonPreemptive, PriorityPreemptive, RoundRobin, MLFQ}

func (a Algorithm) String() string {
	if id, ok := algorithmIDs[a]; ok {
		return id
	}
	return "Unknown"
}

// IsBuiltin reports whether a can be constructed with NewScheduler.
func (a Algorithm) IsBuiltin() bool { return a >= FCFS && a <= MLFQ }

// UsesQuantum reports whether the discipline is time-sliced.
func (a Algorithm) UsesQuantum() bool { return a == RoundRobin || a == MLFQ }

// ParseAlgorithm accepts the short identifiers (FCFS, SJF-NP, ...), case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	for a, id := range algorithmIDs {
		if strings.EqualFold(strings.TrimSpace(s), id) {
			return a, nil
		}
	}
	return 0, invalidConfig("algorithm", "%q is not a known algorithm", s)
}

func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Algorithm) UnmarshalText(b []byte) error {
	parsed, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Scheduler runs one discipline on a single core.
// Implementations must not mutate procs.
type Scheduler interface {
	Name() string
	Schedule(procs []*Process, quantum int) (*Result, error)
}

// builtin is the native implementation of every non-custom algorithm.
type builtin struct {
	alg    Algorithm
	levels []int // MLFQ quanta; derived from the quantum when empty
}

// NewScheduler returns the native scheduler for alg.
// levels is only consulted for MLFQ and may be nil.
func NewScheduler(alg Algorithm, levels []int) (Scheduler, error) {
	if !alg.IsBuiltin() {
		return nil, invalidConfig("algorithm", "%s has no native scheduler", alg)
	}
	if alg == MLFQ && len(levels) > 0 {
		if err := validateLevels(levels); err != nil {
			return nil, err
		}
	}
	return &builtin{alg: alg, levels: levels}, nil
}

func (b *builtin) Name() string {
	switch b.alg {
	case FCFS:
		return "First Come First Serve"
	case SJFNonPreemptive:
		return "Shortest Job First (Non-Preemptive)"
	case SJFPreemptive:
		return "Shortest Remaining Time First"
	case PriorityNonPreemptive:
		return "Priority (Non-Preemptive)"
	case PriorityPreemptive:
		return "Priority (Preemptive)"
	case RoundRobin:
		return "Round Robin"
	default:
		return "Multi-Level Feedback Queue"
	}
}

func (b *builtin) label(quantum int, levels []int) string {
	switch b.alg {
	case RoundRobin:
		return fmt.Sprintf("%s (q=%d)", b.Name(), quantum)
	case MLFQ:
		parts := make([]string, len(levels))
		for i, q := range levels {
			parts[i] = fmt.Sprint(q)
		}
		return fmt.Sprintf("%s (q=%s)", b.Name(), strings.Join(parts, "/"))
	default:
		return b.Name()
	}
}

func (b *builtin) Schedule(procs []*Process, quantum int) (*Result, error) {
	if b.alg.UsesQuantum() && quantum <= 0 {
		return nil, invalidConfig("quantum", "must be > 0, got %d", quantum)
	}

	work := snapshot(procs)
	var (
		segs   []Segment
		levels []int
	)
	switch b.alg {
	case FCFS:
		segs = runNonPreemptive(work, byArrival)
	case SJFNonPreemptive:
		segs = runNonPreemptive(work, byBurst)
	case SJFPreemptive:
		segs = runPreemptive(work, byRemaining)
	case PriorityNonPreemptive:
		segs = runNonPreemptive(work, byPriority)
	case PriorityPreemptive:
		segs = runPreemptive(work, byPriority)
	case RoundRobin:
		segs = runRoundRobin(work, quantum)
	case MLFQ:
		levels = b.levels
		if len(levels) == 0 {
			levels = DefaultLevels(quantum)
		}
		segs = runMLFQ(work, levels)
	}
	if segs == nil {
		segs = []Segment{}
	}

	logrus.Debugf("sched: %s scheduled %d processes in %d segments", b.alg, len(work), len(segs))
	return &Result{Algorithm: b.label(quantum, levels), Processes: work, Timeline: segs}, nil
}

// DefaultLevels derives the three MLFQ quanta [q, 2q, 4q].
func DefaultLevels(quantum int) []int {
	return []int{quantum, quantum * 2, quantum * 4}
}

func validateLevels(levels []int) error {
	for i, q := range levels {
		if q <= 0 {
			return invalidConfig("mlfq_levels", "level %d quantum must be > 0, got %d", i, q)
		}
		if i > 0 && q <= levels[i-1] {
			return invalidConfig("mlfq_levels", "quanta must be strictly increasing, got %v", levels)
		}
	}
	return nil
}
