package version

import "fmt"

// Set at build time via -ldflags "-X github.com/kubedeck/kubedeck/pkg/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String renders the build info for the -version flag and startup log line.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
