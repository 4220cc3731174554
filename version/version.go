package version

import "fmt"

// Tagline is the application's tagline used in help text and documentation
const Tagline = "Your study session, on the clock"

// Build information injected at build time via ldflags
// Example: -ldflags="-X github.com/renato0307/tutor/version.Version=v1.0.0"
var (
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
	Version   = "dev"
)

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("tutor %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}
