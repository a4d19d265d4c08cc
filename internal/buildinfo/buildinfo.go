// Package buildinfo reports the version of the running jrnl binary.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

// Set through -ldflags "-X" for release builds. Empty for local builds.
var (
	Version = ""
	Commit  = ""
)

var readBuildInfo = debug.ReadBuildInfo

// String returns the version line shown by "jrnl --version". Ldflags values
// win; otherwise the module version and VCS revision recorded by the Go
// toolchain are used.
func String() string {
	version := strings.TrimSpace(Version)
	commit := strings.TrimSpace(Commit)

	if info, ok := readBuildInfo(); ok && info != nil {
		if version == "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if commit == "" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}

	if version == "" {
		version = "devel"
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if commit != "" {
		return version + " (" + commit + ")"
	}
	return version
}
