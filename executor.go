package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Invoker runs external command lines synchronously.
type Invoker interface {
	// Run executes inv and returns its exit status. With failFast a nonzero
	// status is also returned as a *StepFailure.
	Run(ctx context.Context, inv Invocation, failFast bool) (int, error)
}

// ShellInvoker interprets command lines with a POSIX shell interpreter, so the
// same lines work on every host. Programs are resolved against env's PATH.
type ShellInvoker struct {
	env    *Environment
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewShellInvoker(env *Environment, stdout, stderr io.Writer) *ShellInvoker {
	return &ShellInvoker{env: env, stdin: os.Stdin, stdout: stdout, stderr: stderr}
}

func (s *ShellInvoker) Run(ctx context.Context, inv Invocation, failFast bool) (int, error) {
	if strings.TrimSpace(inv.Line) == "" {
		return ExitFailure, fmt.Errorf("empty command")
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(inv.Line), "")
	if err != nil {
		return ExitFailure, fmt.Errorf("parse %q: %w", inv.Line, err)
	}

	stdout := s.stdout
	if inv.Stdout != nil {
		stdout = inv.Stdout
	}
	opts := []interp.RunnerOption{
		interp.StdIO(s.stdin, stdout, s.stderr),
		interp.Env(expand.ListEnviron(s.env.Pairs()...)),
	}
	if inv.Dir != "" {
		opts = append(opts, interp.Dir(inv.Dir))
	}
	runner, err := interp.New(opts...)
	if err != nil {
		return ExitFailure, fmt.Errorf("prepare %q: %w", inv.Line, err)
	}

	start := time.Now()
	code, err := exitCode(runner.Run(ctx, file))
	Logger.Debug().
		Str("line", inv.Line).
		Str("dir", inv.Dir).
		Int("code", code).
		Dur("took", time.Since(start)).
		Msg("invocation finished")
	if err != nil {
		return code, fmt.Errorf("run %q: %w", inv.Line, err)
	}

	if code != 0 && failFast {
		return code, newStepFailure(inv.Line, inv.Line, code, nil)
	}
	return code, nil
}

// exitCode separates a shell exit status from an interpreter failure.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return int(status), nil
	}
	return ExitFailure, err
}
