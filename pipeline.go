package main

import (
	"context"
	"fmt"
	"strings"
)

// Generator formats understood by gyp.
const (
	FormatNinja = "ninja"
	FormatXcode = "xcode"
	FormatMSVS  = "msvs"
)

// gypStep regenerates project files in one format. The fixed include,
// depth and generator output keep regeneration reproducible across hosts.
func gypStep(s Settings, format string) Step {
	g := s.Gyp
	line := strings.Join([]string{
		"gyp",
		"--include=" + g.Include,
		"-f " + format,
		"-G msvs_version=" + g.MSVSVersion,
		// Keeps ninja output directly under the generator output.
		"-G output_dir=.",
		"--depth=" + g.Depth,
		"--generator-output=" + g.GeneratorOutput,
		g.Project,
	}, " ")
	return Step{
		Description: "gyp " + format,
		Invocation:  Invocation{Line: line},
		Policy:      Abort,
	}
}

// runAllGyps regenerates every project format for the host.
func runAllGyps(ctx context.Context, ws *Workspace) error {
	steps := make([]Step, 0, 3)
	for _, format := range projectFormats(ws.Platform) {
		steps = append(steps, gypStep(ws.Settings, format))
	}
	_, err := ws.RunAll(ctx, steps...)
	return err
}

// postUpdateDeps builds and installs the configured LLVM for one profile.
// It runs after anything that may have changed the dependencies.
func postUpdateDeps(ctx context.Context, ws *Workspace, p Profile) error {
	ws.Progress("building llvm (%s)...", p)
	_, err := ws.Run(ctx, Step{
		Description: fmt.Sprintf("install llvm %s", p),
		Invocation:  Invocation{Line: "ninja -C " + llvmObjDir(p) + " install"},
		Policy:      Abort,
	})
	ws.Println()
	return err
}

func postUpdateAllDeps(ctx context.Context, ws *Workspace) error {
	for _, p := range Profiles {
		if err := postUpdateDeps(ctx, ws, p); err != nil {
			return err
		}
	}
	return nil
}
