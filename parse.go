package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// commandFlags holds the flags commands recognize. Any other flag is an
// accepted placeholder and ignored.
type commandFlags struct {
	Help  bool
	Debug bool
}

// Profile maps the --debug flag to a build profile.
func (f commandFlags) Profile() Profile {
	if f.Debug {
		return Debug
	}
	return Release
}

func parseFlags(name string, args []string) (commandFlags, error) {
	var flags commandFlags
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.BoolVarP(&flags.Help, "help", "h", false, "Show help for the command")
	fs.BoolVar(&flags.Debug, "debug", false, "Use the debug profile")

	if err := fs.Parse(args); err != nil {
		return flags, fmt.Errorf("parse %s arguments: %w", name, err)
	}
	return flags, nil
}

// helpRequested prints the long help of cmd when args ask for it.
func helpRequested(ws *Workspace, cmd Command, flags commandFlags) bool {
	if !flags.Help {
		return false
	}
	help := cmd.LongHelp()
	if help == "" {
		help = cmd.ShortHelp()
	}
	_, _ = fmt.Fprintf(ws.Out, "%s %s\n\n%s\n", ProgramName, cmd.Name(), help)
	return true
}
