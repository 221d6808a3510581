package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// Local tool directories prepended to PATH so spawned processes find
// gyp and ninja without a system-wide install.
var toolDirs = []string{
	filepath.Join("third_party", "ninja"),
	filepath.Join("third_party", "gyp"),
}

// Environment is the set of variables handed to every spawned process.
type Environment struct {
	vars map[string]string
}

// NewEnvironment builds an Environment from KEY=VALUE pairs such as os.Environ().
func NewEnvironment(pairs []string) *Environment {
	env := &Environment{vars: make(map[string]string, len(pairs))}
	for _, kv := range pairs {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env.vars[env.key(key)] = val
	}
	return env
}

// Windows variable names are case-insensitive; normalize PATH so lookups agree.
func (e *Environment) key(name string) string {
	if runtime.GOOS == "windows" && strings.EqualFold(name, "PATH") {
		return "PATH"
	}
	return name
}

func (e *Environment) Get(name string) string {
	return e.vars[e.key(name)]
}

func (e *Environment) Set(name, value string) {
	e.vars[e.key(name)] = value
}

// SearchPath splits PATH into its directories.
func (e *Environment) SearchPath() []string {
	path := e.Get("PATH")
	if path == "" {
		return nil
	}
	return filepath.SplitList(path)
}

// PrependPath puts dirs in front of the existing PATH entries.
func (e *Environment) PrependPath(dirs ...string) {
	entries := append([]string{}, dirs...)
	entries = append(entries, e.SearchPath()...)
	e.Set("PATH", strings.Join(entries, string(os.PathListSeparator)))
}

// Pairs returns the environment as sorted KEY=VALUE strings.
func (e *Environment) Pairs() []string {
	pairs := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// LoadDotEnv overlays variables from a dotenv file. A missing file is not an error.
func (e *Environment) LoadDotEnv(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for k, v := range vars {
		e.Set(k, v)
	}
	return nil
}

// AugmentedEnvironment returns the process environment with the .env overlay
// from root applied and the local tool directories prepended to PATH.
func AugmentedEnvironment(fs afero.Fs, base []string, root string) (*Environment, error) {
	env := NewEnvironment(base)
	if err := env.LoadDotEnv(fs, filepath.Join(root, ".env")); err != nil {
		return nil, err
	}
	dirs := make([]string, 0, len(toolDirs))
	for _, d := range toolDirs {
		dirs = append(dirs, filepath.Join(root, d))
	}
	env.PrependPath(dirs...)
	return env, nil
}
