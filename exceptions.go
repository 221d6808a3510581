package main

import (
	"errors"
	"fmt"

	"github.com/agilira/orpheus/pkg/orpheus"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// UsageError reports a missing or unknown command name.
type UsageError struct {
	Name  string
	msg   string
	cause error
}

func newUsageError(name string) *UsageError {
	msg := "no command given"
	if name != "" {
		msg = fmt.Sprintf("command %q not found", name)
	}
	return &UsageError{Name: name, msg: msg, cause: orpheus.NotFoundError(name, msg)}
}

func (e *UsageError) Error() string { return e.msg }

func (e *UsageError) Unwrap() error { return e.cause }

// StepFailure is raised when a step with the Abort policy exits nonzero.
type StepFailure struct {
	Step  string
	Line  string
	Code  int
	msg   string
	cause error
}

func newStepFailure(step, line string, code int, err error) *StepFailure {
	outerr := fmt.Sprintf("%q exited with status %d", line, code)
	if err != nil {
		outerr = fmt.Sprintf("%s: %v", outerr, err)
	}
	return &StepFailure{
		Step:  step,
		Line:  line,
		Code:  code,
		msg:   step + ": " + outerr,
		cause: orpheus.ExecutionError(step, outerr),
	}
}

func (e *StepFailure) Error() string { return e.msg }

func (e *StepFailure) Unwrap() error { return e.cause }

// exitStatus is the process exit status for err: the one suggested by the
// orpheus error kind it carries, or ExitFailure for anything else.
func exitStatus(err error) int {
	var oe *orpheus.Error
	if errors.As(err, &oe) {
		return oe.ExitCode()
	}
	return ExitFailure
}

// IsStepFailure reports whether err carries a StepFailure.
func IsStepFailure(err error) bool {
	var sf *StepFailure
	return errors.As(err, &sf)
}
