// Package version exposes build-time version information for mealfinder.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build information, overridden via -ldflags at release time.
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the raw version string.
func GetVersion() string {
	return version
}

// GetGitCommit returns the git commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build date.
func GetBuildDate() string {
	return buildDate
}

// IsPrerelease reports whether the version carries a prerelease suffix (e.g. "-dev", "-rc.1").
// Unparseable versions are treated as prereleases.
func IsPrerelease() bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return true
	}
	return v.Prerelease() != ""
}

// UserAgent returns the User-Agent header sent to the catalog service.
func UserAgent() string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "mealfinder/" + version
	}
	return fmt.Sprintf("mealfinder/%s (%s/%s)", v.String(), runtime.GOOS, runtime.GOARCH)
}

// String returns a multi-field version description for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, gitCommit, buildDate)
}
