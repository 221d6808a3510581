package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot determine working directory: %v\n", err)
		return ExitFailure
	}

	fs := afero.NewOsFs()
	settings, err := LoadSettings(fs, filepath.Join(cwd, SettingsFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return ExitFailure
	}

	env, err := AugmentedEnvironment(fs, os.Environ(), cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot prepare environment: %v\n", err)
		return ExitFailure
	}

	initLogging(logSettings(settings.Log, env), os.Stderr)
	if settings.NoColor {
		color.NoColor = true
	}

	platform := DetectPlatform(fs)
	ws := NewWorkspace(
		cwd,
		fs,
		NewShellInvoker(env, os.Stdout, os.Stderr),
		NewProber(fs, env, platform),
		platform,
		settings,
		os.Stdout,
		os.Stderr,
	)

	code, err := Dispatch(ctx, ws, NewRegistry(ws), args)
	if err != nil {
		Logger.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitStatus(err)
	}
	return code
}
