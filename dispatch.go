package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/agilira/orpheus/pkg/orpheus"
)

// ProgramName is shown in the usage line.
const ProgramName = "xenia-build"

// Dispatch resolves args[0] against the registry and runs the command with the
// remaining arguments. Usage errors and step failures are reported here and
// turned into the exit status of their orpheus error kind; any other error is
// returned for the caller to report.
func Dispatch(ctx context.Context, ws *Workspace, registry *Registry, args []string) (int, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	cmd, ok := registry.Lookup(name)
	if len(args) < 1 || !ok {
		err := newUsageError(name)
		Logger.Debug().Err(err).Msg("usage error")
		_, _ = fmt.Fprint(ws.Out, registry.Usage(ProgramName))
		return exitStatus(err), nil
	}

	Logger.Info().Str("command", cmd.Name()).Strs("args", args[1:]).Msg("dispatching")
	code, err := cmd.Execute(ctx, args[1:], ws.Root)
	if err == nil {
		return code, nil
	}

	var sf *StepFailure
	if !errors.As(err, &sf) {
		return ExitFailure, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	reason := "step failed"
	var oe *orpheus.Error
	if errors.As(err, &oe) {
		reason = oe.UserMessage()
		Logger.Error().
			Str("error_code", string(oe.ErrorCode())).
			Str("step", sf.Step).
			Str("line", sf.Line).
			Int("code", sf.Code).
			Msg(oe.Error())
	}
	ws.Error("%s: %s failed (exit status %d): %s", reason, sf.Step, sf.Code, sf.Line)
	return exitStatus(err), nil
}
