package fileops

import (
	"os"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Detector reports whether a path is a link. link.Strategy satisfies it.
type Detector interface {
	IsLink(path string) bool
}

// Ops performs file operations on a filesystem
type Ops struct {
	fs     afero.Fs
	links  Detector
	clock  clockwork.Clock
	logger zerolog.Logger
}

// Option configures Ops
type Option func(*Ops)

// WithClock sets the clock used to name backups
func WithClock(clock clockwork.Clock) Option {
	return func(o *Ops) {
		o.clock = clock
	}
}

// New creates Ops on fs. A nil detector falls back to symlink detection on fs.
func New(fs afero.Fs, links Detector, opts ...Option) *Ops {
	o := &Ops{
		fs:     fs,
		links:  links,
		clock:  clockwork.NewRealClock(),
		logger: logging.GetLogger("fileops"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// isLink checks both the detector and the filesystem's own view
func (o *Ops) isLink(path string) bool {
	if filesystem.IsSymlink(o.fs, path) {
		return true
	}
	return o.links != nil && o.links.IsLink(path)
}

// EnsureDirectory creates path and any missing parents. It is a no-op when
// the directory already exists.
func (o *Ops) EnsureDirectory(path string) error {
	if info, err := o.fs.Stat(path); err == nil {
		if !info.IsDir() {
			return errors.Newf(errors.ErrIO, "%s exists and is not a directory", path)
		}
		return nil
	}

	if err := o.fs.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create directory %s", path)
	}
	o.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// RemovePath deletes a file or a directory tree. Links are refused so a
// removal can never reach through into the data a link points at.
func (o *Ops) RemovePath(path string) error {
	info, err := filesystem.Lstat(o.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrIO, "nothing to remove at %s", path)
		}
		return errors.Wrapf(err, errors.ErrIO, "cannot inspect %s", path)
	}

	if o.isLink(path) {
		return errors.Newf(errors.ErrPrecondition, "refusing to remove %s: it is a link", path).
			WithDetail("path", path)
	}

	if info.IsDir() {
		err = o.fs.RemoveAll(path)
	} else {
		err = o.fs.Remove(path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to remove %s", path)
	}

	o.logger.Info().Str("path", path).Bool("dir", info.IsDir()).Msg("Removed path")
	return nil
}
