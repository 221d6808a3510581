package main

import (
	"context"
	"fmt"
	"strings"
)

// SetupCommand prepares a fresh checkout: submodules, local tools,
// binutils, both LLVM profiles and the project files.
type SetupCommand struct {
	ws *Workspace
}

func (c *SetupCommand) Name() string      { return "setup" }
func (c *SetupCommand) ShortHelp() string { return "Setup the build environment." }
func (c *SetupCommand) LongHelp() string {
	return strings.Join([]string{
		"Initializes submodules, bootstraps ninja, ensures cmake is installed,",
		"builds binutils, configures and installs LLVM for the debug and",
		"release profiles and regenerates all project files.",
	}, "\n")
}

func (c *SetupCommand) Execute(ctx context.Context, args []string, cwd string) (int, error) {
	flags, err := parseFlags(c.Name(), args)
	if err != nil {
		return ExitFailure, err
	}
	if helpRequested(c.ws, c, flags) {
		return ExitSuccess, nil
	}

	ws := c.ws
	ws.Header("Setting up the build environment...")

	ws.Progress("git submodule init / update...")
	if _, err := ws.RunAll(ctx,
		Step{Description: "submodule init", Invocation: Invocation{Line: "git submodule init"}, Policy: Abort},
		Step{Description: "submodule update", Invocation: Invocation{Line: "git submodule update"}, Policy: Abort},
	); err != nil {
		return ExitFailure, err
	}
	ws.Println()

	if ws.Platform.Cygwin {
		c.disableFileMode(ctx)
	}

	if err := c.bootstrapNinja(ctx); err != nil {
		return ExitFailure, err
	}

	if code, err := c.ensureCMake(ctx); err != nil || code != 0 {
		return code, err
	}

	if err := c.buildBinutils(ctx); err != nil {
		return ExitFailure, err
	}

	ws.Progress("preparing llvm...")
	for _, p := range Profiles {
		if err := c.configureLLVM(ctx, p); err != nil {
			return ExitFailure, err
		}
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

// disableFileMode stops git reporting spurious mode changes on Cygwin.
// Failures only produce a warning.
func (c *SetupCommand) disableFileMode(ctx context.Context) {
	ws := c.ws
	ws.Progress("setting filemode off on cygwin...")
	for _, line := range []string{
		"git config core.filemode false",
		"git submodule foreach git config core.filemode false",
	} {
		code, err := ws.Run(ctx, Step{Description: "disable filemode", Invocation: Invocation{Line: line}, Policy: Continue})
		if err != nil || code != 0 {
			Logger.Warn().Str("line", line).Int("code", code).Err(err).Msg("could not disable filemode")
			ws.Warn("%q failed, continuing", line)
		}
	}
	ws.Println()
}

// bootstrapNinja builds the local ninja when no binary is present.
func (c *SetupCommand) bootstrapNinja(ctx context.Context) error {
	ws := c.ws
	if ws.Prober.Exists(ws.Path("third_party/ninja/ninja")) || ws.Prober.Exists(ws.Path("third_party/ninja/ninja.exe")) {
		return nil
	}
	ws.Progress("preparing ninja...")
	line := ws.Settings.Python + " third_party/ninja/bootstrap.py"
	if ws.Platform.IsWindows() {
		// Forces the 64-bit build.
		line += " --x64"
	}
	_, err := ws.Run(ctx, Step{Description: "bootstrap ninja", Invocation: Invocation{Line: line}, Policy: Abort})
	ws.Println()
	return err
}

// ensureCMake installs cmake through Homebrew or APT when it is missing.
// Without either package manager it prints instructions and returns 1.
func (c *SetupCommand) ensureCMake(ctx context.Context) (int, error) {
	ws := c.ws
	if ws.Prober.HasExecutable("cmake") {
		return ExitSuccess, nil
	}
	ws.Progress("installing cmake...")
	var line string
	switch {
	case ws.Prober.HasExecutable("brew"):
		line = "brew install cmake"
	case ws.Prober.HasExecutable("apt-get"):
		line = "sudo apt-get install cmake"
	default:
		ws.Error("need to install cmake, use:")
		ws.Println("http://www.cmake.org/cmake/resources/software.html")
		ws.Println("Run the Windows installer, select the 'Add to system path'")
		ws.Println("option and restart your command prompt to ensure it's on the")
		ws.Println("PATH.")
		return ExitFailure, nil
	}
	if _, err := ws.Run(ctx, Step{Description: "install cmake", Invocation: Invocation{Line: line}, Policy: Abort}); err != nil {
		return ExitFailure, err
	}
	ws.Println()
	return ExitSuccess, nil
}

// buildBinutils configures and builds the PowerPC binutils in build/binutils.
func (c *SetupCommand) buildBinutils(ctx context.Context) error {
	ws := c.ws
	ws.Progress("binutils...")
	if ws.Platform.IsWindows() {
		ws.Warn("ignoring binutils on Windows... don't change tests!")
		ws.Println()
		return nil
	}

	const dir = "build/binutils"
	if err := ws.MkdirAll(dir); err != nil {
		return err
	}
	b := ws.Settings.Binutils
	configure := append([]string{"../../third_party/binutils/configure"}, b.Flags...)
	configure = append(configure,
		"--target="+b.Target,
		"--with-gnu-ld",
		"--with-gnu-as",
	)
	err := ws.InDir(dir, func() error {
		_, err := ws.RunAll(ctx,
			Step{Description: "configure binutils", Invocation: Invocation{Line: strings.Join(configure, " ")}, Policy: Abort},
			Step{Description: "make binutils", Invocation: Invocation{Line: "make"}, Policy: Abort},
		)
		return err
	})
	ws.Println()
	return err
}

// configureLLVM generates the LLVM build files for one profile into its own
// object directory.
func (c *SetupCommand) configureLLVM(ctx context.Context, p Profile) error {
	ws := c.ws
	installDir, objDir := llvmDir(p), llvmObjDir(p)
	for _, dir := range []string{installDir, objDir} {
		if err := ws.MkdirAll(dir); err != nil {
			return err
		}
	}
	l := ws.Settings.LLVM
	line := strings.Join([]string{
		"cmake",
		fmt.Sprintf("-G%q", l.Generator),
		"-DCMAKE_INSTALL_PREFIX:STRING=../../../" + installDir,
		"-DCMAKE_BUILD_TYPE:STRING=" + p.CMakeBuildType(),
		fmt.Sprintf("-DLLVM_TARGETS_TO_BUILD:STRING=%q", strings.Join(l.Targets, ";")),
		"-DLLVM_INCLUDE_EXAMPLES:BOOL=OFF",
		"-DLLVM_INCLUDE_TESTS:BOOL=OFF",
		"../../../third_party/llvm/",
	}, " ")
	return ws.InDir(objDir, func() error {
		_, err := ws.Run(ctx, Step{
			Description: fmt.Sprintf("configure llvm %s", p),
			Invocation:  Invocation{Line: line},
			Policy:      Abort,
		})
		return err
	})
}
