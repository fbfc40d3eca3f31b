package version

import "strings"

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String renders the version line shown by the CLI, with the commit and
// build date appended when they were stamped in.
func String() string {
	var sb strings.Builder
	sb.WriteString(Version)
	if GitCommit != "unknown" {
		sb.WriteString(" (" + GitCommit)
		if BuildDate != "unknown" {
			sb.WriteString(", " + BuildDate)
		}
		sb.WriteString(")")
	}
	return sb.String()
}
