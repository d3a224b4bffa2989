// Package sandbox runs user-supplied scheduling logic written in JavaScript.
//
// The script must define
//
//	function customScheduler(processes, quantum) { ... }
//
// returning either [processes, name, timeline] or {processes, name, timeline}.
// Each call gets a fresh interpreter with no host bindings: there is no
// filesystem, network or module loader, and runaway scripts are interrupted
// after the configured timeout. Call depth is capped, but heap use is not:
// a script that allocates without bound inside the timeout can still exhaust
// host memory, so only run scripts from trusted authors.
package sandbox

import (
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"

	"schedsim/internal/sched"
)

// EntryPoint is the function every script must define.
const EntryPoint = "customScheduler"

// maxCallStackSize caps JS recursion depth.
const maxCallStackSize = 1024

// DefaultTimeout bounds a single invocation.
const DefaultTimeout = 2 * time.Second

// Sandbox is a validated custom scheduler. It implements sched.Scheduler.
type Sandbox struct {
	program *goja.Program
	timeout time.Duration
	log     logrus.FieldLogger
}

// New compiles and validates source. No Sandbox is returned unless the
// script passes validation, so invalid code never sees real data.
func New(source string, timeout time.Duration) (*Sandbox, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	program, err := goja.Compile("custom.js", source, true)
	if err != nil {
		return nil, &sched.SandboxError{Phase: sched.PhaseValidate, Reason: "syntax error", Cause: err}
	}

	s := &Sandbox{
		program: program,
		timeout: timeout,
		log:     logrus.WithField("component", "sandbox"),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks source without keeping the compiled program around.
func Validate(source string) error {
	_, err := New(source, DefaultTimeout)
	return err
}

// validate runs the entry point against an empty workload.
func (s *Sandbox) validate() error {
	val, err := s.invoke(nil, 1)
	if err != nil {
		return &sched.SandboxError{Phase: sched.PhaseValidate, Reason: "trial run failed", Cause: err}
	}
	if _, err := decodeOutput(val); err != nil {
		return &sched.SandboxError{Phase: sched.PhaseValidate, Reason: "unexpected return shape", Cause: err}
	}
	return nil
}

func (s *Sandbox) Name() string { return "Custom" }

// Schedule runs the script against a snapshot of procs. Every fault inside
// the script comes back as a *sched.SandboxError.
func (s *Sandbox) Schedule(procs []*sched.Process, quantum int) (*sched.Result, error) {
	val, err := s.invoke(procs, quantum)
	if err != nil {
		return nil, &sched.SandboxError{Phase: sched.PhaseExecute, Reason: "script failed", Cause: err}
	}
	out, err := decodeOutput(val)
	if err != nil {
		return nil, &sched.SandboxError{Phase: sched.PhaseExecute, Reason: "unexpected return shape", Cause: err}
	}
	res, err := out.reconcile(procs)
	if err != nil {
		return nil, &sched.SandboxError{Phase: sched.PhaseExecute, Reason: "inconsistent result", Cause: err}
	}

	s.log.Debugf("custom scheduler %q returned %d processes, %d segments", res.Algorithm, len(res.Processes), len(res.Timeline))
	return res, nil
}

// invoke evaluates the program in a fresh VM and calls the entry point.
// The VM is dropped when invoke returns.
func (s *Sandbox) invoke(procs []*sched.Process, quantum int) (val goja.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			val, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	vm := goja.New()
	vm.SetMaxCallStackSize(maxCallStackSize)
	timer := time.AfterFunc(s.timeout, func() {
		vm.Interrupt(fmt.Sprintf("exceeded %s", s.timeout))
	})
	defer timer.Stop()

	if _, err := vm.RunProgram(s.program); err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(vm.Get(EntryPoint))
	if !ok {
		return nil, fmt.Errorf("%s is not defined as a function", EntryPoint)
	}
	return fn(goja.Undefined(), toJS(vm, procs), vm.ToValue(quantum))
}

// toJS builds plain JS objects so scripts can freely mutate and sort them.
func toJS(vm *goja.Runtime, procs []*sched.Process) goja.Value {
	items := make([]any, len(procs))
	for i, p := range procs {
		obj := vm.NewObject()
		_ = obj.Set("pid", p.PID)
		_ = obj.Set("arrival_time", p.ArrivalTime)
		_ = obj.Set("burst_time", p.BurstTime)
		_ = obj.Set("priority", p.Priority)
		_ = obj.Set("remaining_time", p.BurstTime)
		_ = obj.Set("start_time", goja.Null())
		_ = obj.Set("end_time", goja.Null())
		items[i] = obj
	}
	return vm.NewArray(items...)
}
