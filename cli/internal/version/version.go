// Package version exposes the CLI's build identity. The variables are
// overridden at release time through -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	// Version is the semantic version of this build.
	Version = "0.1.0"
	// Commit and Date identify the release build; dev builds leave them empty.
	Commit = ""
	Date   = ""
)

// Info is a resolved snapshot of the build identity.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Platform  string
}

// Get resolves the build identity, filling runtime details.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    orUnknown(Commit),
		Date:      orUnknown(Date),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// String renders the one-line form used by `overzetten version`.
func (i Info) String() string {
	return fmt.Sprintf("overzetten version %s (%s %s)", i.Version, i.Platform, i.GoVersion)
}

// FullString renders the multi-line form used by `overzetten version --full`.
func (i Info) FullString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "overzetten version %s\n", i.Version)
	fmt.Fprintf(&b, "Commit:     %s\n", i.Commit)
	fmt.Fprintf(&b, "Built:      %s\n", i.Date)
	fmt.Fprintf(&b, "Platform:   %s\n", i.Platform)
	fmt.Fprintf(&b, "Go version: %s", i.GoVersion)
	return b.String()
}
