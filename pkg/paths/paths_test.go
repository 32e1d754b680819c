package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// realTempDir returns a temp dir with symlinks in its own path resolved
// (macOS places temp dirs behind /var -> /private/var)
func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestNormalize(t *testing.T) {
	home := realTempDir(t)
	t.Setenv("HOME", home)
	t.Setenv("SAVES_TEST_DIR", filepath.Join(home, "games"))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	realCwd, err := filepath.EvalSymlinks(cwd)
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty input", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "tilde alone", input: "~", want: home},
		{name: "tilde prefix", input: "~/Saves", want: filepath.Join(home, "Saves")},
		{name: "environment variable", input: "$SAVES_TEST_DIR/Saves", want: filepath.Join(home, "games", "Saves")},
		{name: "relative path", input: "some/rel", want: filepath.Join(realCwd, "some", "rel")},
		{name: "cleans dots", input: filepath.Join(home, "a", "..", "b") + string(filepath.Separator), want: filepath.Join(home, "b")},
		{name: "trims surrounding space", input: "  ~/Saves  ", want: filepath.Join(home, "Saves")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeKeepsFinalLinkUnresolved(t *testing.T) {
	base := realTempDir(t)
	target := filepath.Join(base, "cloud")
	link := filepath.Join(base, "Saves")
	require.NoError(t, os.Mkdir(target, 0755))
	require.NoError(t, os.Symlink(target, link))

	got, err := Normalize(link)
	require.NoError(t, err)
	assert.Equal(t, link, got)
}

func TestNormalizeResolvesLinkedParent(t *testing.T) {
	base := realTempDir(t)
	realParent := filepath.Join(base, "real")
	require.NoError(t, os.Mkdir(realParent, 0755))
	require.NoError(t, os.Symlink(realParent, filepath.Join(base, "alias")))

	got, err := Normalize(filepath.Join(base, "alias", "Saves"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realParent, "Saves"), got)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, "", ExpandHome(""))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "x"), ExpandHome("~/x"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
}

func TestClassify(t *testing.T) {
	base := realTempDir(t)

	dir := filepath.Join(base, "dir")
	require.NoError(t, os.Mkdir(dir, 0755))

	file := filepath.Join(base, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(dir, link))

	relLink := filepath.Join(base, "rel-link")
	require.NoError(t, os.Symlink("dir", relLink))

	dangling := filepath.Join(base, "dangling")
	gone := filepath.Join(base, "gone")
	require.NoError(t, os.Mkdir(gone, 0755))
	require.NoError(t, os.Symlink(gone, dangling))
	require.NoError(t, os.Remove(gone))

	tests := []struct {
		name string
		path string
		want types.LinkState
	}{
		{"missing", filepath.Join(base, "nope"), types.LinkState{Kind: types.StateMissing}},
		{"regular directory", dir, types.LinkState{Kind: types.StateRegularDirectory}},
		{"regular file", file, types.LinkState{Kind: types.StateRegularFile}},
		{"link", link, types.LinkState{Kind: types.StateLink, Target: dir}},
		{"relative link target is made absolute", relLink, types.LinkState{Kind: types.StateLink, Target: dir}},
		{"dangling link is still a link", dangling, types.LinkState{Kind: types.StateLink, Target: gone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExists(t *testing.T) {
	base := t.TempDir()
	dangling := filepath.Join(base, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(base, "missing"), dangling))

	assert.True(t, Exists(base))
	assert.True(t, Exists(dangling), "dangling links exist")
	assert.False(t, Exists(filepath.Join(base, "missing")))
	assert.False(t, IsDir(dangling))
	assert.True(t, IsDir(base))
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/a/b", "/a/b"))
	assert.True(t, IsWithin("/a/b", "/a/b/c"))
	assert.False(t, IsWithin("/a/b", "/a/bc"))
	assert.False(t, IsWithin("/a/b", "/a"))
	assert.True(t, IsWithin("/a/b", "/a/b/..c"))
}

func TestAppDirs(t *testing.T) {
	t.Run("explicit overrides", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/custom/config")
		t.Setenv(EnvStateDir, "/custom/state")

		assert.Equal(t, "/custom/config", ConfigDir())
		assert.Equal(t, "/custom/state", StateDir())
		assert.Equal(t, filepath.Join("/custom/state", StateFileName), StateFilePath())
		assert.Equal(t, filepath.Join("/custom/state", LogFileName), LogFilePath())
		assert.Equal(t, filepath.Join("/custom/config", ConfigFileName), ConfigFilePath())
	})

	t.Run("xdg variables", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv(EnvStateDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		t.Setenv("XDG_STATE_HOME", "/xdg/state")

		assert.Equal(t, filepath.Join("/xdg/config", AppDirName), ConfigDir())
		assert.Equal(t, filepath.Join("/xdg/state", AppDirName), StateDir())
	})

	t.Run("default backup root lives in home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		assert.Equal(t, filepath.Join(home, DefaultBackupDirName), DefaultBackupRoot())
	})
}
