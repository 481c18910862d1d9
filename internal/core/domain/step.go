package domain

import (
	"errors"
	"os/exec"
	"strconv"
)

// StepName identifies a bootstrap step.
type StepName string

const (
	StepResolveRoot       StepName = "resolve-root"
	StepCheckExecutable   StepName = "check-executable"
	StepEnsureEnvironment StepName = "ensure-environment"
	StepActivate          StepName = "activate"
	StepUpgradePip        StepName = "upgrade-pip"
	StepEnsureManifest    StepName = "ensure-manifest"
	StepInstall           StepName = "install"
	StepHandoff           StepName = "handoff"
)

// Steps lists the bootstrap steps in execution order.
var Steps = []StepName{
	StepResolveRoot,
	StepCheckExecutable,
	StepEnsureEnvironment,
	StepActivate,
	StepUpgradePip,
	StepEnsureManifest,
	StepInstall,
	StepHandoff,
}

// StepError is the failure of a single bootstrap step.
// It unwraps to both its Kind sentinel and the underlying cause.
type StepError struct {
	Step StepName
	// Kind is one of the sentinel errors in this package.
	Kind error
	// ExitCode is the status the bootstrapper exits with.
	ExitCode int
	Err      error
}

// NewStepError builds a StepError, taking the exit code from the first
// *exec.ExitError or ExitCoder found in err. It defaults to 1.
func NewStepError(step StepName, kind, err error) *StepError {
	return &StepError{
		Step:     step,
		Kind:     kind,
		ExitCode: ExitCodeOf(err),
		Err:      err,
	}
}

func (e *StepError) Error() string {
	msg := string(e.Step)
	if e.Kind != nil {
		msg += ": " + e.Kind.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes Kind and Err to errors.Is and errors.As.
func (e *StepError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Message returns the step and kind without the cause chain.
func (e *StepError) Message() string {
	if e.Kind == nil {
		return string(e.Step)
	}
	return string(e.Step) + ": " + e.Kind.Error()
}

// ExitCoder is implemented by errors that carry a process exit status.
type ExitCoder interface {
	ExitCode() int
}

// ExitCodeOf extracts the process exit status carried by err.
// It returns 0 for nil and 1 when err carries no usable status.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}

	var stepErr *StepError
	if errors.As(err, &stepErr) && stepErr.ExitCode > 0 {
		return stepErr.ExitCode
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
		return 1
	}

	var coder ExitCoder
	if errors.As(err, &coder) {
		if code := coder.ExitCode(); code > 0 {
			return code
		}
	}

	return 1
}

// AppExit reports that the application, started as a child process, exited
// with a non-zero status.
type AppExit struct {
	Code int
}

func (e *AppExit) Error() string {
	return "application exited with status " + strconv.Itoa(e.Code)
}

// ExitCode returns the application's exit status.
func (e *AppExit) ExitCode() int {
	return e.Code
}
