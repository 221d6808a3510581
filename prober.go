package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Prober answers questions about the host without executing anything.
type Prober struct {
	fs       afero.Fs
	env      *Environment
	platform Platform
}

func NewProber(fs afero.Fs, env *Environment, platform Platform) *Prober {
	return &Prober{fs: fs, env: env, platform: platform}
}

// HasExecutable reports whether an executable named name exists in any PATH
// directory. Windows-like hosts also match name.exe.
func (p *Prober) HasExecutable(name string) bool {
	for _, dir := range p.env.SearchPath() {
		dir = strings.Trim(dir, `"`)
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if p.isExecutable(candidate) {
			return true
		}
		if p.platform.IsWindows() || p.platform.Cygwin {
			if p.isExecutable(candidate + ".exe") {
				return true
			}
		}
	}
	return false
}

func (p *Prober) isExecutable(path string) bool {
	info, err := p.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	// Windows has no execute bit.
	if p.platform.IsWindows() {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// Exists reports whether path exists in the workspace filesystem.
func (p *Prober) Exists(path string) bool {
	ok, err := afero.Exists(p.fs, path)
	return err == nil && ok
}

// DetectPlatform inspects the host. Cygwin is recognized by its /Cygwin.bat marker.
func DetectPlatform(fs afero.Fs) Platform {
	platform := HostPlatform()
	if ok, err := afero.Exists(fs, "/Cygwin.bat"); err == nil && ok {
		platform.Cygwin = true
	}
	return platform
}
