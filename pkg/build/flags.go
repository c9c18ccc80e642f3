// SPDX-License-Identifier: MIT
//
// Package build exposes metadata embedded into the binary at link time:
//
//	go build -ldflags "-X onset/pkg/build.buildName=onset \
//	    -X onset/pkg/build.buildVersion=0.1.0 \
//	    -X onset/pkg/build.buildCommit=$(git rev-parse --short HEAD) \
//	    -X onset/pkg/build.buildTime=$(date -u +%FT%TZ)"
//
// Development builds carry no ldflags and keep the defaults below.
package build

import "fmt"

// Info holds build metadata.
type Info struct {
	Name        string
	Description string
	Time        string
	Commit      string
	Version     string
}

// Package-level variables for build information, populated by -ldflags.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildFlags   = &Info{
		Name:        "onset",
		Description: "Spectral-flux onset (beat) detection for WAV audio",
		Time:        "unknown",
		Commit:      "unknown",
		Version:     "dev",
	}
)

// Initialize validates and copies build information from the ldflags
// variables. It returns an error naming the first missing flag and leaves
// the development defaults in place in that case.
func Initialize() error {
	if buildName == "" {
		return fmt.Errorf("BuildName is required")
	}
	if buildTime == "" {
		return fmt.Errorf("BuildTime is required")
	}
	if buildCommit == "" {
		return fmt.Errorf("BuildCommit is required")
	}
	if buildVersion == "" {
		return fmt.Errorf("BuildVersion is required")
	}

	buildFlags.Name = buildName
	buildFlags.Time = buildTime
	buildFlags.Commit = buildCommit
	buildFlags.Version = buildVersion

	return nil
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *Info {
	return buildFlags
}

// String renders the version line shown by --version.
func (i *Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.Commit, i.Time)
}
