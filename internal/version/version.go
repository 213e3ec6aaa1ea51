// Package version carries build metadata injected with -ldflags.
package version

import "runtime"

var (
	Version   = "dev"             // ex: v0.1.0
	Commit    = "none"            // ex: abcd123
	GoVersion = runtime.Version() // go version
)

// UserAgent is the User-Agent sent with every API request.
func UserAgent() string {
	return "bloglist/" + Version
}
