// Package session holds the explicit state of one simulation: the process
// list, the configuration and optional custom scheduling source.
package session

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"schedsim/internal/sandbox"
	"schedsim/internal/sched"
)

// Session is a snapshot of everything a run depends on.
type Session struct {
	config    sched.Config
	processes []*sched.Process
	custom    string
	log       logrus.FieldLogger
}

// Outcome is a finalized run.
type Outcome struct {
	Name      string          // label reported to the user
	Requested sched.Algorithm // what the caller asked for
	Ran       sched.Algorithm // the concrete algorithm that produced the timeline
	Selection *sched.Selection
	Quantum   int
	Cores     int
	Processes []*sched.Process
	Timeline  []sched.Segment
	Metrics   sched.Metrics
}

// Result returns the outcome in the engine's result shape.
func (o *Outcome) Result() *sched.Result {
	return &sched.Result{Algorithm: o.Name, Processes: o.Processes, Timeline: o.Timeline}
}

// New validates cfg and takes a private copy of procs. customSource is only
// used when cfg.Algorithm is Custom.
func New(cfg sched.Config, procs []*sched.Process, customSource string) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Algorithm == sched.Custom && customSource == "" {
		return nil, &sched.ConfigError{Field: "custom", Reason: "source is required for the Custom algorithm"}
	}

	own := make([]*sched.Process, len(procs))
	for i, p := range procs {
		np, err := sched.NewProcess(p.PID, p.ArrivalTime, p.BurstTime, p.Priority)
		if err != nil {
			return nil, err
		}
		own[i] = np
	}

	return &Session{
		config:    cfg,
		processes: own,
		custom:    customSource,
		log:       logrus.WithField("component", "session"),
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() sched.Config { return s.config }

// Processes returns a copy of the session's input processes.
func (s *Session) Processes() []*sched.Process { return sched.CloneAll(s.processes) }

// Run computes the complete schedule synchronously.
func (s *Session) Run() (*Outcome, error) {
	out := &Outcome{
		Requested: s.config.Algorithm,
		Ran:       s.config.Algorithm,
		Quantum:   s.config.Quantum,
		Cores:     s.config.Cores,
	}

	var scheduler sched.Scheduler
	switch s.config.Algorithm {
	case sched.Custom:
		sb, err := sandbox.New(s.custom, time.Duration(s.config.SandboxTimeoutMS)*time.Millisecond)
		if err != nil {
			return nil, err
		}
		scheduler = sb
	case sched.Intelligent:
		sel := sched.Select(s.processes)
		s.log.Debugf("selector chose %s (burst mean=%.2f var=%.2f, %d distinct priorities)",
			sel.Chosen, sel.BurstMean, sel.BurstVariance, sel.DistinctPriorities)
		out.Selection = &sel
		out.Ran = sel.Chosen
		fallthrough
	default:
		sc, err := sched.NewScheduler(out.Ran, s.config.Levels())
		if err != nil {
			return nil, err
		}
		scheduler = sc
	}

	res, err := sched.Dispatch(sched.CloneAll(s.processes), s.config.Cores, scheduler, s.config.Quantum)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", s.config.Algorithm, err)
	}

	out.Name = res.Algorithm
	if out.Selection != nil {
		out.Name = out.Selection.Name()
	}
	out.Processes = res.Processes
	out.Timeline = res.Timeline
	out.Metrics = sched.ComputeMetrics(res.Processes)

	s.log.WithFields(logrus.Fields{
		"algorithm": out.Name,
		"cores":     out.Cores,
		"segments":  len(out.Timeline),
	}).Debug("run complete")
	return out, nil
}

// Step computes the run and returns a cursor replaying its timeline.
func (s *Session) Step() (*Outcome, *sched.Cursor, error) {
	out, err := s.Run()
	if err != nil {
		return nil, nil, err
	}
	return out, sched.NewCursor(out.Result()), nil
}
