// Package version holds build metadata injected through -ldflags.
package version

import (
	"fmt"
	"runtime/debug"
)

const develVersion = "dev"

// Build metadata. Release builds set these with
// -ldflags "-X github.com/Sumatoshi-tech/importcheck/pkg/version.Version=...".
var (
	Version = develVersion
	Commit  = "none"
	Date    = "unknown"
)

// InitBinaryVersion fills Version and Commit from the module build info when
// they were not injected at link time, as with "go install".
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == develVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Commit != "none" {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			Commit = setting.Value
		}
	}
}

// String formats the version line printed by the version command.
func String() string {
	return fmt.Sprintf("importcheck %s (commit: %s, built: %s)", Version, Commit, Date)
}
