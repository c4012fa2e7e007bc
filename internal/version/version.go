// Package version reports build metadata.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version can be set at build time:
// -ldflags="-X github.com/wavefeed/wavefeed/internal/version.Version=v1.0.0"
var Version = ""

// Get returns the release version, or build metadata for dev builds.
func Get() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
				return "dev-" + setting.Value[:7]
			}
		}
	}
	return "dev"
}

// String returns "name version x" for the version command.
func String(name string) string {
	return fmt.Sprintf("%s version %s", name, Get())
}
