/*
Package main implements xenia-build, the command dispatcher that prepares and
builds the xenia tree.

xenia-build does not compile anything itself. Every command is a fixed,
ordered sequence of external steps (git, gyp, ninja, cmake, make, clang,
llvm-dis) run one at a time. A step either aborts its pipeline when it fails or
hands its exit status back to the command, which decides what to do with it.

# Commands

	setup    Setup the build environment.
	pull     Pulls the repo and all dependencies.
	gyp      Runs gyp to update all projects.
	build    Builds the project (release, or debug with --debug).
	test     Runs all tests.
	xethunk  Updates the xethunk.bc file.
	clean    Removes intermediate files and build output.
	nuke     Removes all build/ output.

Running without a command, or with an unknown one, prints this listing and
exits with status 1.

# Exit Status

	0    success
	1    usage error, or a failing step that aborts its pipeline
	2    internal error
	n    the status of a failing build, test or compile step, passed through

# Environment

PATH is prepended with third_party/ninja and third_party/gyp of the working
tree before any step runs. Variables from a .env file at the root of the tree
are applied first. XB_LOG_LEVEL (debug, info, warn, error) sets the diagnostic
log level; it is read after the .env overlay, so it may be set there too.

Progress goes to standard output. Warnings and errors go to standard error.

# Configuration

An optional xenia-build.yaml at the root of the tree overrides tool names and
fixed arguments:

	python: python3
	gyp:
	  msvs_version: "2013"
	llvm:
	  targets: [X86, PowerPC]
	log:
	  level: info
	  pretty: true
	include:
	  - local.yaml

Files listed under include are applied in order after the main file.

# Usage Examples

	xenia-build setup
	xenia-build build --debug
	xenia-build clean
*/
package main
