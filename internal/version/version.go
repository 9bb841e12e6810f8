// Package version is set at build time:
//
//	go build -ldflags "-X primertail/internal/version.Version=v1.2.3"
package version

var (
	Version = "dev"
	Commit  = "none"
)
