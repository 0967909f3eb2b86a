// Package version holds build metadata injected via ldflags:
//
//	go build -ldflags "-X .../internal/version.Version=v1.2.0 -X .../internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata on one line, e.g. for a startup log.
func String() string {
	return fmt.Sprintf("doclistd %s (commit %s, built %s)", Version, Commit, Date)
}
