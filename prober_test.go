package main

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasExecutable(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name     string
		platform Platform
		path     string
		files    map[string]os.FileMode
		lookup   string
		want     bool
	}{
		{
			name:     "found in second directory",
			platform: linux,
			path:     "/usr/local/bin" + sep + "/usr/bin",
			files:    map[string]os.FileMode{"/usr/bin/cmake": 0o755},
			lookup:   "cmake",
			want:     true,
		},
		{
			name:     "not executable",
			platform: linux,
			path:     "/usr/bin",
			files:    map[string]os.FileMode{"/usr/bin/cmake": 0o644},
			lookup:   "cmake",
			want:     false,
		},
		{
			name:     "missing",
			platform: linux,
			path:     "/usr/bin",
			files:    map[string]os.FileMode{"/usr/bin/make": 0o755},
			lookup:   "cmake",
			want:     false,
		},
		{
			name:     "exe suffix on windows",
			platform: Platform{OS: "windows"},
			path:     "/tools",
			files:    map[string]os.FileMode{"/tools/cmake.exe": 0o644},
			lookup:   "cmake",
			want:     true,
		},
		{
			name:     "exe suffix ignored elsewhere",
			platform: linux,
			path:     "/tools",
			files:    map[string]os.FileMode{"/tools/cmake.exe": 0o755},
			lookup:   "cmake",
			want:     false,
		},
		{
			name:     "quoted directory",
			platform: linux,
			path:     `"/opt/cmake/bin"`,
			files:    map[string]os.FileMode{"/opt/cmake/bin/cmake": 0o755},
			lookup:   "cmake",
			want:     true,
		},
		{
			name:     "directory with the same name",
			platform: linux,
			path:     "/usr/bin",
			files:    map[string]os.FileMode{"/usr/bin/cmake/readme": 0o755},
			lookup:   "cmake",
			want:     false,
		},
		{
			name:     "empty path",
			platform: linux,
			path:     "",
			files:    map[string]os.FileMode{"/usr/bin/cmake": 0o755},
			lookup:   "cmake",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for path, mode := range tt.files {
				require.NoError(t, afero.WriteFile(fs, path, []byte("bin"), mode))
				require.NoError(t, fs.Chmod(path, mode))
			}
			prober := NewProber(fs, NewEnvironment([]string{"PATH=" + tt.path}), tt.platform)

			assert.Equal(t, tt.want, prober.HasExecutable(tt.lookup))
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.False(t, DetectPlatform(fs).Cygwin)
	assert.Equal(t, HostPlatform().OS, DetectPlatform(fs).OS)

	require.NoError(t, afero.WriteFile(fs, "/Cygwin.bat", []byte("@echo off"), 0o644))
	assert.True(t, DetectPlatform(fs).Cygwin)
}

func TestProberExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/third_party/ninja/ninja", []byte("bin"), 0o755))
	prober := NewProber(fs, NewEnvironment(nil), linux)

	assert.True(t, prober.Exists("/work/third_party/ninja/ninja"))
	assert.False(t, prober.Exists("/work/third_party/ninja/ninja.exe"))
}
