package link

import (
	"runtime"
	"strings"
)

// ForOS selects the link variant for an operating system family: junctions
// on Windows, symbolic links everywhere else.
func ForOS(goos string) Strategy {
	if isWindows(goos) {
		return NewJunctionStrategy()
	}
	return NewSymlinkStrategy()
}

// ForPlatform selects the link variant for the running system
func ForPlatform() Strategy {
	return ForOS(runtime.GOOS)
}

// PlatformName returns a human friendly name for an operating system family
func PlatformName(goos string) string {
	switch {
	case goos == "darwin":
		return "macOS"
	case isWindows(goos):
		return "Windows"
	default:
		return "Linux"
	}
}

func isWindows(goos string) bool {
	return strings.HasPrefix(strings.ToLower(goos), "win")
}
