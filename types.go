package main

import (
	"io"
	"runtime"
)

// Profile selects the debug or release build configuration.
type Profile string

const (
	Debug   Profile = "debug"
	Release Profile = "release"
)

// Profiles lists every profile in the order setup and pull process them.
var Profiles = []Profile{Debug, Release}

// CMakeBuildType returns the CMAKE_BUILD_TYPE value for the profile.
func (p Profile) CMakeBuildType() string {
	if p == Debug {
		return "Debug"
	}
	return "Release"
}

// FailPolicy decides what a failing step does to its pipeline.
type FailPolicy int

const (
	// Abort raises a StepFailure and stops the pipeline.
	Abort FailPolicy = iota
	// Continue hands the exit code back to the pipeline without raising.
	Continue
)

func (p FailPolicy) String() string {
	if p == Continue {
		return "continue"
	}
	return "abort"
}

// Invocation is a single external command line.
type Invocation struct {
	Line string
	// Dir is the working directory; empty means the workspace's scoped directory.
	Dir string
	// Stdout captures standard output when set.
	Stdout io.Writer
}

// Step is one invocation in a pipeline together with its fail policy.
type Step struct {
	Description string
	Invocation  Invocation
	Policy      FailPolicy
}

// Platform describes the host the pipelines run on.
type Platform struct {
	OS     string
	Cygwin bool
}

func (p Platform) IsWindows() bool {
	return p.OS == "windows"
}

func (p Platform) IsDarwin() bool {
	return p.OS == "darwin"
}

// HostPlatform returns the platform of the running binary without Cygwin detection.
func HostPlatform() Platform {
	return Platform{OS: runtime.GOOS}
}
