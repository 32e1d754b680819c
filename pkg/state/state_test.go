package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/testutil"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() types.BackupRecord {
	return types.BackupRecord{
		ID:             "4f6c2a8e-0c55-4d7a-9d43-1f2b9a1c7e10",
		OriginalSource: "/home/farmer/.config/StardewValley/Saves",
		BackupPath:     "/home/farmer/StardewValleyCrossSaves_Backups/Saves-backup-20240301-123045",
		CreatedAt:      time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC),
	}
}

func TestFileStore(t *testing.T) {
	fs := filesystem.NewMemory()
	store := NewFileStore(fs, "/state/savelink/backup.toml")

	t.Run("missing file means no record", func(t *testing.T) {
		_, ok, err := store.Load()
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("save then load", func(t *testing.T) {
		want := sampleRecord()
		require.NoError(t, store.Save(want))

		got, ok, err := store.Load()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.OriginalSource, got.OriginalSource)
		assert.Equal(t, want.BackupPath, got.BackupPath)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

		content := testutil.ReadFileT(t, fs, store.Path())
		assert.Contains(t, content, "[backup]")
		assert.Contains(t, content, "version = 1")

		exists, _ := afero.Exists(fs, store.Path()+".tmp")
		assert.False(t, exists)
	})

	t.Run("save replaces the slot", func(t *testing.T) {
		next := sampleRecord()
		next.ID = "second"
		require.NoError(t, store.Save(next))

		got, ok, err := store.Load()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "second", got.ID)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.Clear())
		_, ok, err := store.Load()
		require.NoError(t, err)
		assert.False(t, ok)

		// clearing twice is fine
		require.NoError(t, store.Clear())
	})

	t.Run("corrupt file", func(t *testing.T) {
		testutil.CreateFileT(t, fs, store.Path(), "this is = = not toml")
		_, _, err := store.Load()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(sampleRecord()))
	got, ok, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleRecord(), got)

	require.NoError(t, store.Clear())
	_, ok, _ = store.Load()
	assert.False(t, ok)
}

func TestInspect(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	cloud := env.CloudSaves()
	other := filepath.Join(env.CloudRoot, "Other")
	testutil.CreateDirT(t, env.FS, cloud)
	testutil.CreateDirT(t, env.FS, other)

	realDir := filepath.Join(env.Root, "real")
	testutil.CreateDirT(t, env.FS, realDir)

	file := filepath.Join(env.Root, "file")
	testutil.CreateFileT(t, env.FS, file, "x")

	good := filepath.Join(env.Root, "good")
	testutil.CreateSymlinkT(t, env.FS, cloud, good)

	wrong := filepath.Join(env.Root, "wrong")
	testutil.CreateSymlinkT(t, env.FS, other, wrong)

	dangling := filepath.Join(env.Root, "dangling")
	gone := filepath.Join(env.Root, "gone")
	testutil.CreateDirT(t, env.FS, gone)
	testutil.CreateSymlinkT(t, env.FS, gone, dangling)
	require.NoError(t, os.Remove(gone))

	toFile := filepath.Join(env.Root, "to-file")
	testutil.CreateSymlinkT(t, env.FS, file, toFile)

	tests := []struct {
		name     string
		path     string
		expected string
		kind     types.StateKind
		problem  string
	}{
		{"missing", filepath.Join(env.Root, "nope"), "", types.StateMissing, ""},
		{"real directory", realDir, cloud, types.StateRegularDirectory, ""},
		{"file", file, "", types.StateRegularFile, ProblemNotADirectory},
		{"healthy link", good, cloud, types.StateLink, ""},
		{"healthy link without expectation", good, "", types.StateLink, ""},
		{"link elsewhere", wrong, cloud, types.StateLink, ProblemWrongTarget},
		{"dangling link", dangling, "", types.StateLink, ProblemTargetMissing},
		{"link to file", toFile, "", types.StateLink, ProblemTargetNotDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Inspect(tt.path, tt.expected)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, report.State.Kind)
			assert.Equal(t, tt.problem, report.Problem)
			assert.Equal(t, tt.problem == "", report.Healthy())
		})
	}
}
