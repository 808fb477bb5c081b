// Package version holds the build metadata shown by shakmat --version.
package version

// Set via ldflags at build time. Defaults to "dev" for local builds.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)
