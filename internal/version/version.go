package version

import (
	"fmt"
	"runtime"
)

// Build metadata injected with -ldflags "-X ...". Unset values keep the
// development defaults.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
	BuiltBy = "unknown"
)

// Name is the program name reported by the CLI and the MCP server
const Name = "eacdiff"

// Info returns the multi-line version banner printed by "eacdiff version"
func Info() string {
	return fmt.Sprintf(
		"%s %s\nCommit: %s\nBuilt: %s\nGo: %s\nOS/Arch: %s/%s",
		Name,
		Version,
		Commit,
		Date,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// Short returns just the version string
func Short() string {
	return Version
}
