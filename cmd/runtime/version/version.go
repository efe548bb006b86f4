package version

import "fmt"

// Overridden by -ldflags at build time.
var (
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Get returns the build version string.
func Get() string {
	return fmt.Sprintf("%s/%s", gitCommit, buildDate)
}
