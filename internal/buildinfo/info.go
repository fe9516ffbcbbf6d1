// Package buildinfo carries the version stamped into the spendtrack binary:
//
//	go build -ldflags "-X github.com/spendtrack-dev/spendtrack/internal/buildinfo.Version=v0.3.0" ./cmd/spendtrack
package buildinfo

// Set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
