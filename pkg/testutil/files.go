package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/spf13/afero"
)

// FileTree represents a directory structure for testing. Values are either
// file contents (string) or nested FileTrees.
type FileTree map[string]interface{}

// CreateFileT creates a file, and any missing parent directories, on fs
func CreateFileT(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
}

// CreateDirT creates a directory on fs
func CreateDirT(t *testing.T, fs afero.Fs, path string) {
	t.Helper()

	if err := fs.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
}

// CreateSymlinkT creates a symlink at link pointing to target. Tests on a
// filesystem without symlink support are skipped.
func CreateSymlinkT(t *testing.T, fs afero.Fs, target, link string) {
	t.Helper()

	if !filesystem.SupportsSymlinks(fs) {
		t.Skipf("%T cannot hold symlinks", fs)
	}

	dir := filepath.Dir(link)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", link, err)
	}

	if err := filesystem.Symlink(fs, target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}

// ReadFileT returns the content of path or fails the test
func ReadFileT(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// CreateFileTree recursively creates tree under basePath
func CreateFileTree(t *testing.T, fs afero.Fs, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			CreateFileT(t, fs, fullPath, v)
		case FileTree:
			CreateFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// SnapshotTree flattens the regular files below root into a map of
// slash-separated relative path to content. Empty directories show up with
// a trailing slash so two snapshots compare structure as well as bytes.
func SnapshotTree(t *testing.T, fs afero.Fs, root string) map[string]string {
	t.Helper()

	snapshot := make(map[string]string)
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := filesystem.Readlink(fs, path)
			if err != nil {
				return err
			}
			snapshot[rel] = "-> " + target
		case info.IsDir():
			empty, err := afero.IsEmpty(fs, path)
			if err != nil {
				return err
			}
			if empty {
				snapshot[rel+"/"] = ""
			}
		default:
			data, err := afero.ReadFile(fs, path)
			if err != nil {
				return err
			}
			snapshot[rel] = string(data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot %s: %v", root, err)
	}
	return snapshot
}

// SortedKeys returns the keys of a snapshot in order, handy for assertions
func SortedKeys(snapshot map[string]string) []string {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
