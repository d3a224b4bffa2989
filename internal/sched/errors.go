package sched

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the engine. Use errors.Is against these.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrSandboxValidation    = errors.New("sandbox validation error")
	ErrSandboxExecution     = errors.New("sandbox execution error")
)

// InputError reports a process field rejected at construction.
type InputError struct {
	PID    string
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: process %q: %s %s", ErrInvalidInput, e.PID, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// ConfigError reports a rejected configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// SandboxPhase tells which sandbox stage failed.
type SandboxPhase int

const (
	PhaseValidate SandboxPhase = iota
	PhaseExecute
)

func (p SandboxPhase) String() string {
	switch p {
	case PhaseValidate:
		return "validate"
	case PhaseExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// SandboxError is the structured failure returned by the custom-algorithm sandbox.
type SandboxError struct {
	Phase  SandboxPhase
	Reason string
	Cause  error
}

func (e *SandboxError) Error() string {
	kind := ErrSandboxExecution
	if e.Phase == PhaseValidate {
		kind = ErrSandboxValidation
	}
	if e.Cause != nil {
		return fmt.Sprintf("%v: %s: %v", kind, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%v: %s", kind, e.Reason)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *SandboxError) Unwrap() []error {
	kind := ErrSandboxExecution
	if e.Phase == PhaseValidate {
		kind = ErrSandboxValidation
	}
	if e.Cause == nil {
		return []error{kind}
	}
	return []error{kind, e.Cause}
}

func invalidConfig(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
