// Package buildinfo provides build-time version information for the autogen
// binary. This is the version of the tool itself, not of the Python project
// it manages (see package version for that).
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/autogen/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/autogen/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/autogen/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version of autogen (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA autogen was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
