package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/dotf/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/dotf/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/dotf/internal/version.Date={{.Date}}
)

// String formats the build information for `dotf version`.
func String() string {
	return fmt.Sprintf("dotf %s (commit %s, built %s)", Version, Commit, Date)
}
