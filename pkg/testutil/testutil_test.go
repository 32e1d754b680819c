package testutil

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTreeSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	CreateFileTree(t, fs, "/root", FileTree{
		"a.txt": "a",
		"sub": FileTree{
			"b.txt": "b",
		},
		"empty": FileTree{},
	})

	snapshot := SnapshotTree(t, fs, "/root")
	assert.Equal(t, map[string]string{
		"a.txt":     "a",
		"sub/b.txt": "b",
		"empty/":    "",
	}, snapshot)
	assert.Equal(t, []string{"a.txt", "empty/", "sub/b.txt"}, SortedKeys(snapshot))
	assert.Equal(t, "b", ReadFileT(t, fs, "/root/sub/b.txt"))
}

func TestCreateSymlinkT_SkipsWithoutSupport(t *testing.T) {
	reached := false
	ok := t.Run("memory", func(t *testing.T) {
		CreateSymlinkT(t, afero.NewMemMapFs(), "/a", "/b")
		reached = true
	})

	assert.True(t, ok, "a skipped test is not a failure")
	assert.False(t, reached, "helper should skip before returning")
}

func TestSnapshotRecordsLinks(t *testing.T) {
	env := NewTestEnvironment(t, EnvIsolated)
	root := filepath.Join(env.Root, "tree")
	CreateFileTree(t, env.FS, root, FileTree{"a.txt": "a"})
	CreateSymlinkT(t, env.FS, "a.txt", filepath.Join(root, "alias"))

	assert.Equal(t, map[string]string{
		"a.txt": "a",
		"alias": "-> a.txt",
	}, SnapshotTree(t, env.FS, root))
}

func TestFailingFs(t *testing.T) {
	boom := stderrors.New("boom")
	fs := NewFailingFs(afero.NewMemMapFs(), FailOn(OpOpenFile, "/bad.txt", boom))

	require.NoError(t, afero.WriteFile(fs, "/good.txt", []byte("ok"), 0644))

	err := afero.WriteFile(fs, "/bad.txt", []byte("no"), 0644)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	_, statErr := fs.Stat("/bad.txt")
	assert.True(t, os.IsNotExist(statErr))

	assert.Contains(t, fs.Calls(), "openfile /good.txt")
	assert.Contains(t, fs.Calls(), "openfile /bad.txt")
}

func TestIsolatedEnvironment(t *testing.T) {
	env := NewTestEnvironment(t, EnvIsolated).WithSaves(FileTree{"save1.dat": "farm"})

	assert.Equal(t, env.HomeDir, os.Getenv("HOME"))
	assert.Equal(t, "farm", ReadFileT(t, env.FS, filepath.Join(env.SavesDir, "save1.dat")))
	assert.DirExists(t, env.CloudRoot)
	assert.Equal(t, filepath.Join(env.CloudRoot, "Saves"), env.CloudSaves())
}
