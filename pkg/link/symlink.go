package link

import (
	"os"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
)

// SymlinkStrategy links directories with symbolic links (macOS, Linux and
// other POSIX systems)
type SymlinkStrategy struct{}

// NewSymlinkStrategy creates the symbolic link variant
func NewSymlinkStrategy() *SymlinkStrategy {
	return &SymlinkStrategy{}
}

// Name implements Strategy
func (s *SymlinkStrategy) Name() string {
	return "symlink"
}

// CreateLink implements Strategy
func (s *SymlinkStrategy) CreateLink(linkPath, targetPath string) error {
	if err := checkCreatePreconditions(linkPath, targetPath); err != nil {
		return err
	}

	if err := os.Symlink(targetPath, linkPath); err != nil {
		return errors.Wrap(err, errors.ErrLinkCreate, "failed to create symlink").
			WithDetail("link", linkPath).
			WithDetail("target", targetPath)
	}

	logger := logging.GetLogger("link.symlink")
	logger.Debug().
		Str("link", linkPath).
		Str("target", targetPath).
		Msg("Created symlink")
	return nil
}

// IsLink implements Strategy
func (s *SymlinkStrategy) IsLink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// RemoveLink implements Strategy
func (s *SymlinkStrategy) RemoveLink(path string) error {
	return removeEntry(s, path)
}
