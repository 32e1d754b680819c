package fileops

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/spf13/afero"
)

// CopyFailure records one entry that could not be copied
type CopyFailure struct {
	Path string
	Err  error
}

func (f CopyFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// copier carries the state of a single CopyContents call
type copier struct {
	*Ops
	overwrite bool
	copied    int
	skipped   int
	failures  []CopyFailure
}

func (c *copier) fail(path string, err error) {
	c.failures = append(c.failures, CopyFailure{Path: path, Err: err})
	c.logger.Warn().Str("path", path).Err(err).Msg("Copy failed")
}

// CopyContents copies everything inside src into dst, creating dst when
// needed. dst is never cleared first.
//
// With overwrite, colliding files are replaced, colliding directories are
// merged and a link found in dst is replaced by the source entry (only the
// link entry is removed, never what it points at). Without overwrite every
// colliding entry is skipped and left untouched.
//
// A failing entry does not stop the copy of its siblings. All failures are
// returned together as an ErrCopy naming the first failing path.
func (o *Ops) CopyContents(src, dst string, overwrite bool) error {
	if err := o.EnsureDirectory(dst); err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to copy %s", dst).
			WithDetail("failures", []CopyFailure{{Path: dst, Err: err}})
	}

	c := &copier{Ops: o, overwrite: overwrite}
	c.copyDir(src, dst)

	o.logger.Debug().
		Str("src", src).
		Str("dst", dst).
		Bool("overwrite", overwrite).
		Int("copied", c.copied).
		Int("skipped", c.skipped).
		Int("failed", len(c.failures)).
		Msg("Copied contents")

	if len(c.failures) == 0 {
		return nil
	}

	causes := make([]error, 0, len(c.failures))
	for _, f := range c.failures {
		causes = append(causes, fmt.Errorf("%s: %w", f.Path, f.Err))
	}

	first := c.failures[0].Path
	msg := fmt.Sprintf("failed to copy %s", first)
	if n := len(c.failures); n > 1 {
		msg = fmt.Sprintf("failed to copy %s (and %d more)", first, n-1)
	}
	return errors.Wrap(stderrors.Join(causes...), errors.ErrCopy, msg).
		WithDetail("failures", c.failures).
		WithDetail("path", first)
}

const ownerRWX os.FileMode = 0o700

func (c *copier) copyDir(src, dst string) {
	entries, err := afero.ReadDir(c.fs, src)
	if err != nil {
		c.fail(src, err)
		return
	}

	for _, entry := range entries {
		c.copyEntry(entry, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()))
	}
}

func (c *copier) copyEntry(info os.FileInfo, src, dst string) {
	existing, err := filesystem.Lstat(c.fs, dst)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		c.fail(dst, err)
		return
	}

	if exists && !c.overwrite {
		c.skipped++
		return
	}

	if exists && c.isLink(dst) {
		if err := c.fs.Remove(dst); err != nil {
			c.fail(dst, err)
			return
		}
		exists = false
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		c.copySymlink(src, dst, existing, exists)
	case info.IsDir():
		c.copySubdir(info, src, dst, existing, exists)
	default:
		c.copyFileEntry(info, src, dst, existing, exists)
	}
}

func (c *copier) copySubdir(info os.FileInfo, src, dst string, existing os.FileInfo, exists bool) {
	if exists && !existing.IsDir() {
		c.fail(src, fmt.Errorf("destination %s exists and is not a directory", dst))
		return
	}

	// the directory stays owner-writable until its children are in place,
	// read-only source directories get their mode back afterwards
	if !exists {
		if err := c.fs.Mkdir(dst, info.Mode().Perm()|ownerRWX); err != nil {
			c.fail(dst, err)
			return
		}
	} else if existing.Mode().Perm()&ownerRWX != ownerRWX {
		if err := c.fs.Chmod(dst, existing.Mode().Perm()|ownerRWX); err != nil {
			c.fail(dst, err)
			return
		}
	}

	c.copyDir(src, dst)

	if err := c.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		c.fail(dst, err)
		return
	}
	// children are written first, they would bump the mtime again
	if err := c.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		c.fail(dst, err)
	}
}

func (c *copier) copyFileEntry(info os.FileInfo, src, dst string, existing os.FileInfo, exists bool) {
	if exists {
		if existing.IsDir() {
			c.fail(src, fmt.Errorf("destination %s is a directory", dst))
			return
		}
		// read-only files cannot be truncated in place
		if err := c.fs.Remove(dst); err != nil {
			c.fail(dst, err)
			return
		}
	}

	if err := copyFile(c.fs, src, dst, info); err != nil {
		c.fail(src, err)
		return
	}
	c.copied++
}

func (c *copier) copySymlink(src, dst string, existing os.FileInfo, exists bool) {
	target, err := filesystem.Readlink(c.fs, src)
	if err != nil {
		c.fail(src, err)
		return
	}

	if exists {
		if existing.IsDir() {
			c.fail(src, fmt.Errorf("destination %s is a directory", dst))
			return
		}
		if err := c.fs.Remove(dst); err != nil {
			c.fail(dst, err)
			return
		}
	}

	if err := filesystem.Symlink(c.fs, target, dst); err != nil {
		c.fail(src, err)
		return
	}
	c.copied++
}

// copyFile copies bytes, permission bits and modification time
func copyFile(fs afero.Fs, src, dst string, info os.FileInfo) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return fs.Chtimes(dst, info.ModTime(), info.ModTime())
}
