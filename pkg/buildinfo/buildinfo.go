// Package buildinfo reports which folio build is running.
package buildinfo

import "runtime/debug"

// BinaryVersion is set at build time via -ldflags. Defaults to "dev".
var BinaryVersion = "dev"

// Version sources reported by Resolve.
const (
	SourceLdflags = "ldflags"
	SourceModule  = "module"
	SourceDefault = "default"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// ModuleVersion returns the module version embedded by the Go toolchain (when available).
func ModuleVersion() string {
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return ""
}

// Resolve prefers the ldflags version, then a tagged module version, then "dev".
func Resolve() (version, source string) {
	if BinaryVersion != "" && BinaryVersion != "dev" {
		return BinaryVersion, SourceLdflags
	}
	if v := ModuleVersion(); v != "" && v != "(devel)" {
		return v, SourceModule
	}
	return "dev", SourceDefault
}
