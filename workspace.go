package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Workspace is everything a command needs for one run of the tool: the
// working tree root, the host, the collaborators and the output streams.
// Progress goes to Out; warnings and errors go to ErrOut.
type Workspace struct {
	Root     string
	Fs       afero.Fs
	Invoker  Invoker
	Prober   *Prober
	Platform Platform
	Settings Settings
	Out      io.Writer
	ErrOut   io.Writer

	// dir is the scoped directory invocations run in; only InDir changes it.
	dir string
}

func NewWorkspace(root string, fs afero.Fs, invoker Invoker, prober *Prober, platform Platform, settings Settings, out, errOut io.Writer) *Workspace {
	return &Workspace{
		Root:     root,
		Fs:       fs,
		Invoker:  invoker,
		Prober:   prober,
		Platform: platform,
		Settings: settings,
		Out:      out,
		ErrOut:   errOut,
		dir:      root,
	}
}

// Dir is the directory invocations currently run in.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path resolves a working-tree relative path against Root.
func (w *Workspace) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(w.Root, filepath.FromSlash(rel))
}

// InDir runs fn with the scoped directory set to dir and restores the
// previous directory on every exit path, including panics.
func (w *Workspace) InDir(dir string, fn func() error) error {
	prev := w.dir
	w.dir = w.Path(dir)
	defer func() { w.dir = prev }()
	return fn()
}

// Run executes a step in the scoped directory with its standard output on Out
// unless the step captures it elsewhere. Abort steps surface a nonzero
// exit as a *StepFailure; Continue steps just return the code.
func (w *Workspace) Run(ctx context.Context, step Step) (int, error) {
	inv := step.Invocation
	if inv.Stdout == nil {
		inv.Stdout = w.Out
	}
	if inv.Dir == "" {
		inv.Dir = w.dir
	} else {
		inv.Dir = w.Path(inv.Dir)
	}

	Logger.Debug().
		Str("step", step.Description).
		Str("policy", step.Policy.String()).
		Str("dir", inv.Dir).
		Msg("running step")

	code, err := w.Invoker.Run(ctx, inv, step.Policy == Abort)
	if err != nil {
		if IsStepFailure(err) {
			return code, newStepFailure(step.Description, inv.Line, code, nil)
		}
		return code, fmt.Errorf("%s: %w", step.Description, err)
	}
	if code != 0 && step.Policy == Abort {
		// An invoker that ignores failFast must not let the pipeline continue.
		return code, newStepFailure(step.Description, inv.Line, code, nil)
	}
	return code, nil
}

// RunAll executes steps in order and stops at the first error or nonzero code.
func (w *Workspace) RunAll(ctx context.Context, steps ...Step) (int, error) {
	for _, step := range steps {
		code, err := w.Run(ctx, step)
		if err != nil || code != 0 {
			return code, err
		}
	}
	return 0, nil
}

// MkdirAll creates a working-tree relative directory.
func (w *Workspace) MkdirAll(rel string) error {
	if err := w.Fs.MkdirAll(w.Path(rel), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", rel, err)
	}
	return nil
}

// IsDir reports whether a working-tree relative path is an existing directory.
func (w *Workspace) IsDir(rel string) (bool, error) {
	return afero.DirExists(w.Fs, w.Path(rel))
}

func (w *Workspace) Header(format string, a ...any) {
	_, _ = headerColor.Fprintf(w.Out, format+"\n", a...)
	w.Println()
}

func (w *Workspace) Progress(format string, a ...any) {
	_, _ = fmt.Fprintf(w.Out, "- "+format+"\n", a...)
}

func (w *Workspace) Println(a ...any) {
	_, _ = fmt.Fprintln(w.Out, a...)
}

func (w *Workspace) Warn(format string, a ...any) {
	_, _ = warnColor.Fprintf(w.ErrOut, "WARNING: "+format+"\n", a...)
}

func (w *Workspace) Error(format string, a ...any) {
	_, _ = errorColor.Fprintf(w.ErrOut, "ERROR: "+format+"\n", a...)
}

func (w *Workspace) Success() {
	_, _ = successColor.Fprintln(w.Out, "Success!")
}
