package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInDirRestoresDirectory(t *testing.T) {
	e := newTestEnv(t, linux)
	boom := errors.New("configure failed")

	err := e.ws.InDir("build/binutils", func() error {
		assert.Equal(t, "/work/build/binutils", e.ws.Dir())
		return e.ws.InDir("/abs/elsewhere", func() error {
			assert.Equal(t, "/abs/elsewhere", e.ws.Dir())
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, testRoot, e.ws.Dir())
}

func TestInDirRestoresAfterPanic(t *testing.T) {
	e := newTestEnv(t, linux)

	assert.Panics(t, func() {
		_ = e.ws.InDir("build", func() error { panic("boom") })
	})
	assert.Equal(t, testRoot, e.ws.Dir())
}

func TestRunUsesScopedDirectory(t *testing.T) {
	e := newTestEnv(t, linux)

	_, err := e.ws.Run(context.Background(), Step{Description: "a", Invocation: Invocation{Line: "make"}})
	require.NoError(t, err)
	require.NoError(t, e.ws.InDir("build", func() error {
		_, err := e.ws.Run(context.Background(), Step{Description: "b", Invocation: Invocation{Line: "make"}})
		return err
	}))
	_, err = e.ws.Run(context.Background(), Step{Description: "c", Invocation: Invocation{Line: "make", Dir: "test"}})
	require.NoError(t, err)

	require.Len(t, e.invoker.calls, 3)
	assert.Equal(t, "/work", e.invoker.calls[0].Dir)
	assert.Equal(t, "/work/build", e.invoker.calls[1].Dir)
	assert.Equal(t, "/work/test", e.invoker.calls[2].Dir)
}

func TestRunPolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      FailPolicy
		code        int
		stepFailure bool
	}{
		{"abort success", Abort, 0, false},
		{"abort failure", Abort, 4, true},
		{"continue success", Continue, 0, false},
		{"continue failure", Continue, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t, linux)
			e.invoker.on("ninja", tt.code)

			code, err := e.ws.Run(context.Background(), Step{Description: "ninja", Invocation: Invocation{Line: "ninja"}, Policy: tt.policy})
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.stepFailure, IsStepFailure(err))
			if !tt.stepFailure {
				assert.NoError(t, err)
			}
		})
	}
}

// ignoringInvoker never raises, whatever failFast says.
type ignoringInvoker struct{ code int }

func (i ignoringInvoker) Run(context.Context, Invocation, bool) (int, error) { return i.code, nil }

func TestRunAbortDoesNotTrustInvoker(t *testing.T) {
	e := newTestEnv(t, linux)
	e.ws.Invoker = ignoringInvoker{code: 2}

	code, err := e.ws.Run(context.Background(), Step{Description: "make", Invocation: Invocation{Line: "make"}, Policy: Abort})
	assert.Equal(t, 2, code)
	assert.True(t, IsStepFailure(err))
}

func TestRunWrapsInvokerErrors(t *testing.T) {
	e := newTestEnv(t, linux)
	e.invoker.rules = append(e.invoker.rules, fakeRule{prefix: "gyp", err: errors.New("parse error")})

	_, err := e.ws.Run(context.Background(), Step{Description: "gyp ninja", Invocation: Invocation{Line: "gyp"}, Policy: Continue})
	require.Error(t, err)
	assert.False(t, IsStepFailure(err))
	assert.Contains(t, err.Error(), "gyp ninja")
}

func TestRunAllStopsAtFirstFailure(t *testing.T) {
	tests := []struct {
		name   string
		policy FailPolicy
	}{
		{"abort", Abort},
		{"continue", Continue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t, linux)
			e.invoker.on("two", 6)

			code, err := e.ws.RunAll(context.Background(),
				Step{Description: "1", Invocation: Invocation{Line: "one"}, Policy: tt.policy},
				Step{Description: "2", Invocation: Invocation{Line: "two"}, Policy: tt.policy},
				Step{Description: "3", Invocation: Invocation{Line: "three"}, Policy: tt.policy},
			)
			assert.Equal(t, 6, code)
			assert.Equal(t, tt.policy == Abort, IsStepFailure(err))
			assert.Equal(t, []string{"one", "two"}, e.invoker.lines())
		})
	}
}

func TestRunSendsStepOutputToWorkspace(t *testing.T) {
	e := newTestEnv(t, linux)

	_, err := e.ws.Run(context.Background(), Step{Description: "a", Invocation: Invocation{Line: "make"}})
	require.NoError(t, err)
	require.Len(t, e.invoker.calls, 1)
	assert.Same(t, e.out, e.invoker.calls[0].Stdout)

	var captured bytes.Buffer
	_, err = e.ws.Run(context.Background(), Step{Description: "b", Invocation: Invocation{Line: "make", Stdout: &captured}})
	require.NoError(t, err)
	assert.Same(t, &captured, e.invoker.calls[1].Stdout)
}

func TestRunStreamsShellOutputToWorkspace(t *testing.T) {
	root := t.TempDir()
	var out, errOut, invokerOut bytes.Buffer
	env := NewEnvironment([]string{"PATH=" + os.Getenv("PATH")})
	fs := afero.NewOsFs()
	ws := NewWorkspace(root, fs, NewShellInvoker(env, &invokerOut, &errOut), NewProber(fs, env, linux), linux, DefaultSettings(), &out, &errOut)

	code, err := ws.Run(context.Background(), Step{Description: "echo", Invocation: Invocation{Line: "echo configured"}, Policy: Abort})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "configured\n", out.String())
	assert.Empty(t, invokerOut.String())
}

func TestWarningsAndErrorsGoToErrOut(t *testing.T) {
	e := newTestEnv(t, linux)

	e.ws.Progress("preparing ninja...")
	e.ws.Warn("%q failed, continuing", "git config")
	e.ws.Error("need to install %s", "cmake")

	assert.Equal(t, "- preparing ninja...\n", e.out.String())
	assert.Contains(t, e.errOut.String(), "WARNING: \"git config\" failed, continuing")
	assert.Contains(t, e.errOut.String(), "ERROR: need to install cmake")
}
