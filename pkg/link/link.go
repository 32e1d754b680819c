// Package link creates, detects and removes the directory link that
// replaces a save folder. Callers hold a Strategy and never branch on the
// platform themselves; ForPlatform picks the variant once at startup.
package link

import (
	"os"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/paths"
)

// Strategy is the platform-specific way of linking a directory
type Strategy interface {
	// Name identifies the variant in logs and status output
	Name() string
	// CreateLink makes linkPath point at targetPath. linkPath must not exist
	// and targetPath must be an existing directory.
	CreateLink(linkPath, targetPath string) error
	// IsLink reports whether path is a link of this variant's kind. It is
	// false for ordinary directories and for paths that do not exist.
	IsLink(path string) bool
	// RemoveLink deletes the link entry itself, never the data it points at.
	RemoveLink(path string) error
}

// checkCreatePreconditions enforces the contract shared by every variant
func checkCreatePreconditions(linkPath, targetPath string) error {
	if paths.Exists(linkPath) {
		return errors.Newf(errors.ErrPrecondition, "cannot create link: %s already exists", linkPath).
			WithDetail("link", linkPath)
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrPrecondition, "cannot create link: target %s does not exist", targetPath).
				WithDetail("target", targetPath)
		}
		return errors.Wrapf(err, errors.ErrIO, "cannot inspect link target %s", targetPath)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrPrecondition, "cannot create link: target %s is not a directory", targetPath).
			WithDetail("target", targetPath)
	}

	return nil
}

// removeEntry removes a link entry after confirming it really is one
func removeEntry(s Strategy, path string) error {
	if !s.IsLink(path) {
		return errors.Newf(errors.ErrPrecondition, "refusing to remove %s: not a %s", path, s.Name()).
			WithDetail("path", path)
	}
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to remove %s %s", s.Name(), path)
	}
	return nil
}
