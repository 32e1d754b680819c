package version

import (
	"fmt"
	"runtime"
)

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/savelink/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/savelink/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/savelink/internal/version.Date={{.Date}}
)

// Info is the build information in one value
type Info struct {
	Version  string `json:"version" yaml:"version"`
	Commit   string `json:"commit" yaml:"commit"`
	Date     string `json:"date" yaml:"date"`
	Platform string `json:"platform" yaml:"platform"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{
		Version:  Version,
		Commit:   Commit,
		Date:     Date,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the information the way the version command prints it
func (i Info) String() string {
	return fmt.Sprintf("savelink version %s\n  commit:   %s\n  built:    %s\n  platform: %s",
		i.Version, i.Commit, i.Date, i.Platform)
}
