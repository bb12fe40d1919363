package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/matrix/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/matrix/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/matrix/internal/version.Date={{.Date}}
)

// String formats the build information for `matrix version`.
func String() string {
	return fmt.Sprintf("matrix version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
