// Package version exposes build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Set via -ldflags "-X compliance_tui/pkg/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

// Platform returns GOOS/GOARCH.
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Summary returns the version with a short commit hash when known.
func Summary() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit == "" || Commit == "none" {
		return v
	}
	short := Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s)", v, short)
}

// Banner is the --version output.
func Banner() string {
	return fmt.Sprintf("compliance_tui %s\nbuilt %s with %s for %s", Summary(), Date, GoVersion, Platform())
}
