// Package version exposes build information injected at link time.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Set with -ldflags "-X github.com/rshade/breakeven/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersion returns the version string of the binary.
func GetVersion() string {
	return version
}

// GetInfo returns the full build information.
func GetInfo() Info {
	return Info{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Parse returns the binary version as a semantic version.
func Parse() (*semver.Version, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", version, err)
	}
	return v, nil
}

// IsRelease reports whether the binary was built from a tagged release,
// i.e. its version parses and carries no prerelease suffix.
func IsRelease() bool {
	v, err := Parse()
	return err == nil && v.Prerelease() == ""
}

// Satisfies reports whether the binary version meets constraint,
// e.g. ">= 1.2". Prerelease builds only satisfy prerelease constraints.
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := Parse()
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}
