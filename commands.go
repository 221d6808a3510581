package main

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/afero"
)

// PullCommand updates the repository and its dependencies.
type PullCommand struct {
	ws *Workspace
}

func (c *PullCommand) Name() string      { return "pull" }
func (c *PullCommand) ShortHelp() string { return "Pulls the repo and all dependencies." }
func (c *PullCommand) LongHelp() string {
	return "Pulls the repository, updates submodules, rebuilds LLVM for both\n" +
		"profiles and regenerates all project files."
}

func (c *PullCommand) Execute(ctx context.Context, args []string, cwd string) (int, error) {
	flags, err := parseFlags(c.Name(), args)
	if err != nil {
		return ExitFailure, err
	}
	if helpRequested(c.ws, c, flags) {
		return ExitSuccess, nil
	}
	ws := c.ws
	ws.Header("Pulling...")

	ws.Progress("pulling self...")
	if _, err := ws.Run(ctx, Step{Description: "pull", Invocation: Invocation{Line: "git pull"}, Policy: Abort}); err != nil {
		return ExitFailure, err
	}
	ws.Println()

	ws.Progress("pulling dependencies...")
	if _, err := ws.Run(ctx, Step{Description: "submodule update", Invocation: Invocation{Line: "git submodule update"}, Policy: Abort}); err != nil {
		return ExitFailure, err
	}
	ws.Println()

	if err := postUpdateAllDeps(ctx, ws); err != nil {
		return ExitFailure, err
	}

	ws.Progress("running gyp...")
	if err := runAllGyps(ctx, ws); err != nil {
		return ExitFailure, err
	}
	ws.Println()

	ws.Success()
	return ExitSuccess, nil
}

// GypCommand regenerates the project files.
type GypCommand struct {
	ws *Workspace
}

func (c *GypCommand) Name() string      { return "gyp" }
func (c *GypCommand) ShortHelp() string { return "Runs gyp to update all projects." }
func (c *GypCommand) LongHelp() string {
	return "Generates ninja build files, plus Xcode projects on macOS and\n" +
		"Visual Studio projects on Windows."
}

func (c *GypCommand) Execute(ctx context.Context, args []string, cwd string) (int, error) {
	flags, err := parseFlags(c.Name(), args)
	if err != nil {
		return ExitFailure, err
	}
	if helpRequested(c.ws, c, flags) {
		return ExitSuccess, nil
	}
	c.ws.Header("Running gyp...")
	if err := runAllGyps(ctx, c.ws); err != nil {
		return ExitFailure, err
	}
	c.ws.Success()
	return ExitSuccess, nil
}

// TestCommand refreshes the codegen fixtures and runs the test runner.
type TestCommand struct {
	ws *Workspace
}

func (c *TestCommand) Name() string      { return "test" }
func (c *TestCommand) ShortHelp() string { return "Runs all tests." }
func (c *TestCommand) LongHelp() string  { return "" }

func (c *TestCommand) Execute(ctx context.Context, args []string, cwd string) (int, error) {
	flags, err := parseFlags(c.Name(), args)
	if err != nil {
		return ExitFailure, err
	}
	if helpRequested(c.ws, c, flags) {
		return ExitSuccess, nil
	}
	ws := c.ws
	ws.Header("Testing...")

	ws.Println("Updating test files...")
	code, err := ws.Run(ctx, Step{
		Description: "update test files",
		Invocation:  Invocation{Line: "make -C " + ws.Settings.Test.FixturesDir},
		Policy:      Continue,
	})
	ws.Println()
	if err != nil || code != 0 {
		return code, err
	}

	ws.Println("Launching test runner...")
	code, err = ws.Run(ctx, Step{
		Description: "test runner",
		Invocation:  Invocation{Line: ws.Settings.Test.Runner},
		Policy:      Continue,
	})
	ws.Println()
	return code, err
}

// XethunkCommand rebuilds the xethunk bitcode and prints its disassembly.
type XethunkCommand struct {
	ws *Workspace
}

func (c *XethunkCommand) Name() string      { return "xethunk" }
func (c *XethunkCommand) ShortHelp() string { return "Updates the xethunk.bc file." }
func (c *XethunkCommand) LongHelp() string {
	return "Compiles xethunk.c to LLVM bitcode with clang, disassembles it with\n" +
		"the release llvm-dis and prints the result."
}

func (c *XethunkCommand) Execute(ctx context.Context, args []string, cwd string) (int, error) {
	flags, err := parseFlags(c.Name(), args)
	if err != nil {
		return ExitFailure, err
	}
	if helpRequested(c.ws, c, flags) {
		return ExitSuccess, nil
	}
	ws := c.ws
	ws.Header("Building xethunk...")

	src := ws.Settings.Xethunk.Source
	code, err := ws.Run(ctx, Step{
		Description: "compile xethunk",
		Invocation:  Invocation{Line: fmt.Sprintf("clang -emit-llvm -O0 -c %s.c -o %s.bc", src, src)},
		Policy:      Continue,
	})
	if err != nil || code != 0 {
		return code, err
	}

	if _, err := ws.Run(ctx, Step{
		Description: "disassemble xethunk",
		Invocation:  Invocation{Line: fmt.Sprintf("%s %s.bc -o %s.ll", path.Join(llvmDir(Release), "bin", "llvm-dis"), src, src)},
		Policy:      Abort,
	}); err != nil {
		return ExitFailure, err
	}

	ll := src + ".ll"
	data, err := afero.ReadFile(ws.Fs, ws.Path(ll))
	if err != nil {
		return ExitFailure, newStepFailure("print xethunk", "read "+ll, ExitFailure, err)
	}
	if _, err := ws.Out.Write(data); err != nil {
		return ExitFailure, newStepFailure("print xethunk", "write "+ll, ExitFailure, err)
	}

	ws.Success()
	return ExitSuccess, nil
}

// CleanCommand removes the xenia build output.
type CleanCommand struct {
	ws *Workspace
}

func (c *CleanCommand) Name() string      { return "clean" }
func (c *CleanCommand) ShortHelp() string { return "Removes intermediate files and build output." }
func (c *CleanCommand) LongHelp() string  { return "Removes build/xenia/. LLVM and binutils are kept." }

func (c *CleanCommand) Execute(ctx context.Context, args []string, cwd string) (int, error) {
	return removeTree(c.ws, c, args, "build/xenia/")
}

// NukeCommand removes all build output including LLVM and binutils.
type NukeCommand struct {
	ws *Workspace
}

func (c *NukeCommand) Name() string      { return "nuke" }
func (c *NukeCommand) ShortHelp() string { return "Removes all build/ output." }
func (c *NukeCommand) LongHelp() string  { return "Removes build/. The next build runs setup again." }

func (c *NukeCommand) Execute(ctx context.Context, args []string, cwd string) (int, error) {
	return removeTree(c.ws, c, args, "build/")
}

// removeTree deletes dir when it is a directory. Absence is not an error.
func removeTree(ws *Workspace, cmd Command, args []string, dir string) (int, error) {
	flags, err := parseFlags(cmd.Name(), args)
	if err != nil {
		return ExitFailure, err
	}
	if helpRequested(ws, cmd, flags) {
		return ExitSuccess, nil
	}
	ws.Header("Cleaning build artifacts...")

	ws.Progress("removing %s...", dir)
	isDir, err := ws.IsDir(dir)
	if err != nil {
		return ExitFailure, fmt.Errorf("stat %s: %w", dir, err)
	}
	if isDir {
		if err := ws.Fs.RemoveAll(ws.Path(dir)); err != nil {
			return ExitFailure, fmt.Errorf("remove %s: %w", dir, err)
		}
		Logger.Info().Str("dir", dir).Msg("removed")
	}
	ws.Println()

	ws.Success()
	return ExitSuccess, nil
}
