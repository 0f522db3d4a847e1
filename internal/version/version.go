// Package version reports the build version of vector-ipscan.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/vectorscan/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/vectorscan/internal/version.Commit=abc1234"
//
// Unset values are filled from the VCS stamp in the binary's build info.
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		info, ok := debug.ReadBuildInfo()
		if ok {
			applyBuildSettings(info.Settings)
		}
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// applyBuildSettings fills Version and Commit from vcs.* build settings.
func applyBuildSettings(settings []debug.BuildSetting) {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if rev := vcs["vcs.revision"]; Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if vcs["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		Commit = rev
	}

	if stamp := vcs["vcs.time"]; Version == "" && stamp != "" {
		if t, err := time.Parse(time.RFC3339, stamp); err == nil {
			Version = "dev-" + t.Format("20060102")
		}
	}
}

// Full returns the version string including the commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
