package filesystem

import (
	"os"

	"github.com/spf13/afero"
)

// NewOS returns the real filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// Lstat stats name without following a final symlink when the filesystem
// supports it, and falls back to Stat otherwise.
func Lstat(fs afero.Fs, name string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return fs.Stat(name)
}

// IsSymlink reports whether name is a symlink on fs
func IsSymlink(fs afero.Fs, name string) bool {
	info, err := Lstat(fs, name)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// Readlink returns the target of the symlink at name
func Readlink(fs afero.Fs, name string) (string, error) {
	r, ok := fs.(afero.LinkReader)
	if !ok {
		return "", &os.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
	}
	return r.ReadlinkIfPossible(name)
}

// Symlink creates newname pointing at oldname
func Symlink(fs afero.Fs, oldname, newname string) error {
	l, ok := fs.(afero.Linker)
	if !ok {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: afero.ErrNoSymlink}
	}
	return l.SymlinkIfPossible(oldname, newname)
}

// SupportsSymlinks reports whether fs can both create and read symlinks
func SupportsSymlinks(fs afero.Fs) bool {
	_, canLink := fs.(afero.Linker)
	_, canRead := fs.(afero.LinkReader)
	return canLink && canRead
}
