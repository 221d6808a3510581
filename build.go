package main

import (
	"context"
	"fmt"
)

// BuildCommand builds xenia with ninja in the selected profile, running
// setup first when the LLVM build output is missing.
type BuildCommand struct {
	ws    *Workspace
	setup Command
}

func (c *BuildCommand) Name() string      { return "build" }
func (c *BuildCommand) ShortHelp() string { return "Builds the project." }
func (c *BuildCommand) LongHelp() string {
	return "Builds the release profile, or the debug profile with --debug.\n" +
		"Runs setup first when build/llvm/ is missing."
}

func (c *BuildCommand) Execute(ctx context.Context, args []string, cwd string) (int, error) {
	flags, err := parseFlags(c.Name(), args)
	if err != nil {
		return ExitFailure, err
	}
	if helpRequested(c.ws, c, flags) {
		return ExitSuccess, nil
	}
	ws := c.ws
	profile := flags.Profile()

	// A clean or nuke may have removed LLVM.
	hasLLVM, err := ws.IsDir("build/llvm")
	if err != nil {
		return ExitFailure, fmt.Errorf("stat build/llvm: %w", err)
	}
	if !hasLLVM {
		ws.Println("Missing LLVM, running setup...")
		code, err := c.setup.Execute(ctx, nil, cwd)
		if err != nil {
			return ExitFailure, err
		}
		if code != 0 {
			return ExitFailure, newStepFailure("setup", c.setup.Name(), code, nil)
		}
		ws.Println()
	}

	ws.Header("Building %s...", profile)

	ws.Progress("running gyp for ninja...")
	if _, err := ws.Run(ctx, gypStep(ws.Settings, FormatNinja)); err != nil {
		return ExitFailure, err
	}
	ws.Println()

	ws.Progress("building xenia in %s...", profile)
	code, err := ws.Run(ctx, Step{
		Description: "ninja " + string(profile),
		Invocation:  Invocation{Line: "ninja -C " + buildDir(profile)},
		Policy:      Continue,
	})
	ws.Println()
	if err != nil {
		return ExitFailure, err
	}
	if code != 0 {
		return code, nil
	}

	ws.Success()
	return ExitSuccess, nil
}
