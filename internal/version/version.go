// Package version reports build metadata for coach binaries.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X github.com/joeatwork/coach/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info describes the running binary. Builds without ldflags fall back to the
// module version and VCS stamp recorded by the Go toolchain.
func Info() string {
	v, commit, date := Version, Commit, Date
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			v, commit, date = fromBuildInfo(bi, v, commit, date)
		}
	}
	return fmt.Sprintf("%s (commit %s, built %s)", v, commit, date)
}

func fromBuildInfo(bi *debug.BuildInfo, v, commit, date string) (string, string, string) {
	if mv := bi.Main.Version; mv != "" && mv != "(devel)" {
		v = mv
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) > 12 {
				commit = s.Value[:12]
			} else if s.Value != "" {
				commit = s.Value
			}
		case "vcs.time":
			date = s.Value
		}
	}
	return v, commit, date
}
