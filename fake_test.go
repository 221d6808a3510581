package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testRoot = "/work"

// fakeInvoker records every invocation and answers with the code of the
// first rule whose prefix matches the command line.
type fakeInvoker struct {
	calls []Invocation
	rules []fakeRule
}

type fakeRule struct {
	prefix string
	code   int
	err    error
	// onRun runs before the code is returned, e.g. to create output files.
	onRun func()
}

func (f *fakeInvoker) on(prefix string, code int) *fakeInvoker {
	f.rules = append(f.rules, fakeRule{prefix: prefix, code: code})
	return f
}

func (f *fakeInvoker) Run(_ context.Context, inv Invocation, failFast bool) (int, error) {
	f.calls = append(f.calls, inv)
	for _, r := range f.rules {
		if !strings.HasPrefix(inv.Line, r.prefix) {
			continue
		}
		if r.onRun != nil {
			r.onRun()
		}
		if r.err != nil {
			return ExitFailure, r.err
		}
		if r.code != 0 && failFast {
			return r.code, newStepFailure(inv.Line, inv.Line, r.code, nil)
		}
		return r.code, nil
	}
	return 0, nil
}

func (f *fakeInvoker) lines() []string {
	lines := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		lines = append(lines, c.Line)
	}
	return lines
}

func (f *fakeInvoker) called(prefix string) bool {
	for _, c := range f.calls {
		if strings.HasPrefix(c.Line, prefix) {
			return true
		}
	}
	return false
}

type testEnv struct {
	ws       *Workspace
	invoker  *fakeInvoker
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	fs       afero.Fs
	registry *Registry
}

// newTestEnv builds a workspace rooted at /work on an in-memory filesystem.
// /usr/bin is the only PATH entry and holds cmake.
func newTestEnv(t *testing.T, platform Platform) *testEnv {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))
	installBin(t, fs, "/usr/bin/cmake")

	env := NewEnvironment([]string{"PATH=/usr/bin"})
	invoker := &fakeInvoker{}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	ws := NewWorkspace(testRoot, fs, invoker, NewProber(fs, env, platform), platform, DefaultSettings(), out, errOut)
	return &testEnv{ws: ws, invoker: invoker, out: out, errOut: errOut, fs: fs, registry: NewRegistry(ws)}
}

func installBin(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte("#!/bin/sh\n"), 0o755))
}

func (e *testEnv) mkdir(t *testing.T, rel string) {
	t.Helper()
	require.NoError(t, e.fs.MkdirAll(e.ws.Path(rel), 0o755))
}

func (e *testEnv) exec(t *testing.T, name string, args ...string) (int, error) {
	t.Helper()
	cmd, ok := e.registry.Lookup(name)
	require.True(t, ok, "command %s not registered", name)
	return cmd.Execute(context.Background(), args, testRoot)
}

var linux = Platform{OS: "linux"}
