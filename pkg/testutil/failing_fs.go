package testutil

import (
	"os"
	"sync"
	"time"

	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/spf13/afero"
)

// Operation names passed to FailingFs.Hook
const (
	OpOpenFile  = "openfile"
	OpMkdir     = "mkdir"
	OpRemove    = "remove"
	OpRemoveAll = "removeall"
	OpChmod     = "chmod"
	OpChtimes   = "chtimes"
	OpSymlink   = "symlink"
)

// FailingFs wraps an afero.Fs and consults Hook before every mutating call.
// A non-nil error from Hook is returned instead of performing the call. Hook
// can also be used to observe the filesystem right before a mutation.
type FailingFs struct {
	afero.Fs
	Hook func(op, name string) error

	mu    sync.Mutex
	calls []string
}

// NewFailingFs wraps fs
func NewFailingFs(fs afero.Fs, hook func(op, name string) error) *FailingFs {
	return &FailingFs{Fs: fs, Hook: hook}
}

// FailOn returns a hook failing op on exactly name with err
func FailOn(op, name string, err error) func(string, string) error {
	return func(gotOp, gotName string) error {
		if gotOp == op && gotName == name {
			return err
		}
		return nil
	}
}

// Calls returns "op name" for every mutating call seen so far
func (f *FailingFs) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FailingFs) check(op, name string) error {
	f.mu.Lock()
	f.calls = append(f.calls, op+" "+name)
	f.mu.Unlock()

	if f.Hook == nil {
		return nil
	}
	return f.Hook(op, name)
}

func (f *FailingFs) Create(name string) (afero.File, error) {
	if err := f.check(OpOpenFile, name); err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Create(name)
}

func (f *FailingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
		if err := f.check(OpOpenFile, name); err != nil {
			return nil, &os.PathError{Op: "open", Path: name, Err: err}
		}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *FailingFs) Mkdir(name string, perm os.FileMode) error {
	if err := f.check(OpMkdir, name); err != nil {
		return &os.PathError{Op: "mkdir", Path: name, Err: err}
	}
	return f.Fs.Mkdir(name, perm)
}

func (f *FailingFs) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdir, path); err != nil {
		return &os.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return f.Fs.MkdirAll(path, perm)
}

func (f *FailingFs) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return &os.PathError{Op: "remove", Path: name, Err: err}
	}
	return f.Fs.Remove(name)
}

func (f *FailingFs) RemoveAll(path string) error {
	if err := f.check(OpRemoveAll, path); err != nil {
		return &os.PathError{Op: "removeall", Path: path, Err: err}
	}
	return f.Fs.RemoveAll(path)
}

func (f *FailingFs) Chmod(name string, mode os.FileMode) error {
	if err := f.check(OpChmod, name); err != nil {
		return &os.PathError{Op: "chmod", Path: name, Err: err}
	}
	return f.Fs.Chmod(name, mode)
}

func (f *FailingFs) Chtimes(name string, atime, mtime time.Time) error {
	if err := f.check(OpChtimes, name); err != nil {
		return &os.PathError{Op: "chtimes", Path: name, Err: err}
	}
	return f.Fs.Chtimes(name, atime, mtime)
}

// LstatIfPossible keeps link awareness of the wrapped filesystem
func (f *FailingFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	if l, ok := f.Fs.(afero.Lstater); ok {
		return l.LstatIfPossible(name)
	}
	info, err := f.Fs.Stat(name)
	return info, false, err
}

func (f *FailingFs) SymlinkIfPossible(oldname, newname string) error {
	if err := f.check(OpSymlink, newname); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	return filesystem.Symlink(f.Fs, oldname, newname)
}

func (f *FailingFs) ReadlinkIfPossible(name string) (string, error) {
	return filesystem.Readlink(f.Fs, name)
}
