package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/veesix-networks/vpptest/pkg/version.Version=..."
var (
	Version = "dev"
	Commit  = ""
)

func revision() string {
	if Commit != "" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "unknown"
}

func Full() string {
	return fmt.Sprintf("vppifprobe %s (%s)", Version, revision())
}
