package link

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/paths"
)

// CommandRunner runs an external command and returns its combined output
type CommandRunner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// JunctionStrategy links directories with NTFS directory junctions. Unlike
// symbolic links, junctions do not need administrator rights or developer
// mode, which is why Windows uses them.
type JunctionStrategy struct {
	run   CommandRunner // nil means exec, Windows only
	goos  string
	isJct func(path string) bool
}

// NewJunctionStrategy creates the junction variant backed by mklink
func NewJunctionStrategy() *JunctionStrategy {
	return &JunctionStrategy{
		goos:  runtime.GOOS,
		isJct: paths.IsJunction,
	}
}

// WithRunner replaces the command runner, used to exercise the mklink call
// away from Windows
func (s *JunctionStrategy) WithRunner(run CommandRunner) *JunctionStrategy {
	s.run = run
	return s
}

// Name implements Strategy
func (s *JunctionStrategy) Name() string {
	return "junction"
}

// CreateLink implements Strategy
func (s *JunctionStrategy) CreateLink(linkPath, targetPath string) error {
	if err := checkCreatePreconditions(linkPath, targetPath); err != nil {
		return err
	}

	run := s.run
	if run == nil {
		if s.goos != "windows" {
			return errors.Newf(errors.ErrLinkCreate, "directory junctions are not supported on %s", s.goos)
		}
		run = execRunner
	}

	// exec quotes each argument, so paths with spaces survive intact
	out, err := run("cmd", "/c", "mklink", "/J", linkPath, targetPath)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = "mklink failed"
		}
		return errors.Wrapf(err, errors.ErrLinkCreate, "failed to create junction: %s", msg).
			WithDetail("link", linkPath).
			WithDetail("target", targetPath)
	}

	logger := logging.GetLogger("link.junction")
	logger.Debug().
		Str("link", linkPath).
		Str("target", targetPath).
		Msg("Created junction")
	return nil
}

// IsLink implements Strategy. Symbolic links made by other tools count as
// links too, so a folder linked that way can still be restored.
func (s *JunctionStrategy) IsLink(path string) bool {
	if s.isJct(path) {
		return true
	}
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// RemoveLink implements Strategy. On Windows removing a junction deletes
// only the reparse point, the target directory is left alone.
func (s *JunctionStrategy) RemoveLink(path string) error {
	return removeEntry(s, path)
}
