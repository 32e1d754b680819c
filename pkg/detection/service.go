package detection

import (
	"os"
	"runtime"

	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/paths"
)

// Result is one detection run, as shown to the user
type Result struct {
	Platform     string `json:"platform" yaml:"platform"`
	Installation string `json:"installation,omitempty" yaml:"installation,omitempty"`
	Saves        string `json:"saves,omitempty" yaml:"saves,omitempty"`
	Hint         string `json:"hint" yaml:"hint"`
}

// Found reports whether the save folder was found
func (r Result) Found() bool {
	return r.Saves != ""
}

// Service runs detection with extra user supplied candidates tried first
type Service struct {
	detector      PathDetector
	extraSaves    []string
	extraInstalls []string
}

// NewService creates a Service. Extra paths may use ~ and environment
// variables.
func NewService(detector PathDetector, extraSaves, extraInstalls []string) *Service {
	return &Service{
		detector:      detector,
		extraSaves:    extraSaves,
		extraInstalls: extraInstalls,
	}
}

// ForPlatform creates a Service for the running OS and the current user
func ForPlatform(extraSaves, extraInstalls []string) *Service {
	home, err := os.UserHomeDir()
	if err != nil {
		home = paths.ExpandHome("~")
	}
	return NewService(NewPathDetector(runtime.GOOS, home, os.Getenv), extraSaves, extraInstalls)
}

// FindSavesPath returns the first candidate save folder that is a directory
func (s *Service) FindSavesPath() (string, bool) {
	logger := logging.GetLogger("detection")

	for _, candidate := range s.candidates(s.extraSaves, s.detector.SavesPaths()) {
		if paths.IsDir(candidate) {
			logger.Debug().Str("path", candidate).Msg("Saves found")
			return candidate, true
		}
		logger.Trace().Str("path", candidate).Msg("No saves here")
	}
	return "", false
}

// FindInstallation returns the first candidate that exists and looks like
// the game. User supplied paths only need to exist.
func (s *Service) FindInstallation() (string, bool) {
	logger := logging.GetLogger("detection")

	for _, candidate := range s.candidates(s.extraInstalls, nil) {
		if paths.Exists(candidate) {
			logger.Debug().Str("path", candidate).Msg("Installation found (configured)")
			return candidate, true
		}
	}

	for _, candidate := range s.detector.InstallPaths() {
		if !paths.Exists(candidate) {
			continue
		}
		if s.detector.IsInstallation(candidate) {
			logger.Debug().Str("path", candidate).Msg("Installation found")
			return candidate, true
		}
		logger.Trace().Str("path", candidate).Msg("Folder exists but does not hold the game")
	}
	return "", false
}

// PlatformHint tells the user where saves usually live on this platform
func (s *Service) PlatformHint() string {
	return s.detector.Hint()
}

// Detect runs both lookups
func (s *Service) Detect() Result {
	result := Result{
		Platform: s.detector.Platform(),
		Hint:     s.PlatformHint(),
	}
	result.Installation, _ = s.FindInstallation()
	result.Saves, _ = s.FindSavesPath()
	return result
}

// candidates expands extra paths and puts them in front of the defaults
func (s *Service) candidates(extra, defaults []string) []string {
	out := make([]string, 0, len(extra)+len(defaults))
	for _, p := range extra {
		if p == "" {
			continue
		}
		out = append(out, os.ExpandEnv(paths.ExpandHome(p)))
	}
	return append(out, defaults...)
}
