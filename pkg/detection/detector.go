package detection

import (
	"os"
	"path/filepath"
	"strings"
)

// GameName is the folder name Steam and GOG install the game under
const GameName = "Stardew Valley"

// PathDetector lists conventional locations for one platform
type PathDetector interface {
	// Platform is the display name of the platform
	Platform() string
	// SavesPaths returns candidate save folders, most likely first
	SavesPaths() []string
	// InstallPaths returns candidate installation folders, most likely first
	InstallPaths() []string
	// IsInstallation checks that an existing candidate really holds the game
	IsInstallation(path string) bool
	// Hint tells the user where saves usually live
	Hint() string
}

// NewPathDetector picks the detector for goos. home is the user's home
// directory and getenv looks up environment variables.
func NewPathDetector(goos, home string, getenv func(string) string) PathDetector {
	if getenv == nil {
		getenv = os.Getenv
	}

	switch {
	case strings.HasPrefix(goos, "windows"):
		return &windowsDetector{home: home, getenv: getenv}
	case goos == "darwin":
		return &macOSDetector{home: home}
	default:
		return &linuxDetector{home: home}
	}
}

type macOSDetector struct {
	home string
}

func (d *macOSDetector) Platform() string { return "macOS" }

func (d *macOSDetector) SavesPaths() []string {
	return []string{
		filepath.Join(d.home, "Library", "Application Support", "StardewValley", "Saves"),
		filepath.Join(d.home, ".config", "StardewValley", "Saves"),
	}
}

func (d *macOSDetector) InstallPaths() []string {
	return []string{
		"/Applications/Stardew Valley.app",
		filepath.Join(d.home, "Applications", "Stardew Valley.app"),
		filepath.Join(d.home, "Library", "Application Support", "Steam", "steamapps", "common", GameName),
		"/Applications/Stardew Valley GOG.app",
	}
}

// IsInstallation accepts an app bundle, a Steam folder holding the bundle
// contents, or a folder containing the bundle
func (d *macOSDetector) IsInstallation(path string) bool {
	if strings.HasSuffix(path, ".app") {
		return true
	}
	return exists(filepath.Join(path, "Contents")) || exists(filepath.Join(path, GameName+".app"))
}

func (d *macOSDetector) Hint() string {
	return "macOS: typical Saves = ~/Library/Application Support/StardewValley/Saves"
}

type windowsDetector struct {
	home   string
	getenv func(string) string
}

func (d *windowsDetector) Platform() string { return "Windows" }

func (d *windowsDetector) SavesPaths() []string {
	appData := d.getenv("APPDATA")
	if appData == "" {
		return nil
	}
	return []string{filepath.Join(appData, "StardewValley", "Saves")}
}

func (d *windowsDetector) InstallPaths() []string {
	candidates := []string{
		`C:\Program Files (x86)\Steam\steamapps\common\Stardew Valley`,
		`C:\Program Files\Steam\steamapps\common\Stardew Valley`,
		`C:\GOG Games\Stardew Valley`,
		`C:\Program Files (x86)\GOG Galaxy\Games\Stardew Valley`,
	}

	steam := filepath.Join(d.home, "AppData", "Local", "Steam")
	if exists(steam) {
		candidates = append(candidates, filepath.Join(steam, "steamapps", "common", GameName))
	}
	return candidates
}

func (d *windowsDetector) IsInstallation(path string) bool {
	return exists(filepath.Join(path, GameName+".exe"))
}

func (d *windowsDetector) Hint() string {
	return `Windows: typical Saves = %AppData%\StardewValley\Saves`
}

type linuxDetector struct {
	home string
}

func (d *linuxDetector) Platform() string { return "Linux" }

func (d *linuxDetector) SavesPaths() []string {
	return []string{filepath.Join(d.home, ".config", "StardewValley", "Saves")}
}

func (d *linuxDetector) InstallPaths() []string {
	return []string{
		filepath.Join(d.home, ".steam", "steam", "steamapps", "common", GameName),
		filepath.Join(d.home, ".local", "share", "Steam", "steamapps", "common", GameName),
		filepath.Join(d.home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam", "steamapps", "common", GameName),
	}
}

func (d *linuxDetector) IsInstallation(path string) bool {
	return exists(filepath.Join(path, GameName))
}

func (d *linuxDetector) Hint() string {
	return "Linux: typical Saves = ~/.config/StardewValley/Saves"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
