package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Command is a named unit of work exposed on the command line.
type Command interface {
	Name() string
	ShortHelp() string
	LongHelp() string
	// Execute runs the command with the arguments following its name and
	// returns the process exit code. cwd is the directory the tool was started
	// in; Dispatch always passes the workspace Root, and working-tree paths
	// resolve against that same value through Workspace.Path.
	Execute(ctx context.Context, args []string, cwd string) (int, error)
}

// Registry maps command names to commands. It is read-only once built.
type Registry struct {
	commands map[string]Command
}

// NewRegistry builds the fixed command set bound to ws.
func NewRegistry(ws *Workspace) *Registry {
	r := &Registry{commands: make(map[string]Command)}
	setup := &SetupCommand{ws: ws}
	for _, cmd := range []Command{
		setup,
		&PullCommand{ws: ws},
		&GypCommand{ws: ws},
		&BuildCommand{ws: ws, setup: setup},
		&TestCommand{ws: ws},
		&XethunkCommand{ws: ws},
		&CleanCommand{ws: ws},
		&NukeCommand{ws: ws},
	} {
		r.register(cmd)
	}
	return r
}

func (r *Registry) register(cmd Command) {
	if _, dup := r.commands[cmd.Name()]; dup {
		panic(fmt.Sprintf("command %q registered twice", cmd.Name()))
	}
	r.commands[cmd.Name()] = cmd
}

// Lookup finds a command by exact, case-sensitive name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns every command name in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usage renders the usage line and the sorted command listing.
func (r *Registry) Usage(program string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s command [--help]\n\n", program)
	sb.WriteString("Commands:\n")
	for _, name := range r.Names() {
		fmt.Fprintf(&sb, "  %s\n", name)
		if help := r.commands[name].ShortHelp(); help != "" {
			fmt.Fprintf(&sb, "    %s\n", help)
		}
	}
	return sb.String()
}
