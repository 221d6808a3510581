package main

import "path"

// projectFormats lists the generator formats for the host.
func projectFormats(p Platform) []string {
	formats := []string{FormatNinja}
	switch {
	case p.IsDarwin():
		formats = append(formats, FormatXcode)
	case p.IsWindows():
		formats = append(formats, FormatMSVS)
	}
	return formats
}

// llvmDir is the install prefix of the LLVM build for a profile.
func llvmDir(p Profile) string {
	return path.Join("build", "llvm", string(p)) + "/"
}

// llvmObjDir holds the generated LLVM build files for a profile.
func llvmObjDir(p Profile) string {
	return path.Join("build", "llvm", string(p)+"-obj") + "/"
}

// buildDir is the ninja output directory for a profile.
func buildDir(p Profile) string {
	return path.Join("build", "xenia", string(p))
}
