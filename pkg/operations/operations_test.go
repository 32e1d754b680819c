package operations

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/fileops"
	"github.com/arthur-debert/savelink/pkg/link"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/state"
	"github.com/arthur-debert/savelink/pkg/testutil"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saves = testutil.FileTree{
	"save1.dat": "farm day 1",
	"Farm_123": testutil.FileTree{
		"Farm_123":         "<SaveGame/>",
		"SaveGameInfo":     "<Farmer/>",
		"Farm_123_old":     "<SaveGame old/>",
		"SaveGameInfo_old": "<Farmer old/>",
	},
}

// brokenLinks refuses to create links, like an OS rejecting a junction
type brokenLinks struct {
	link.Strategy
}

func (brokenLinks) CreateLink(linkPath, targetPath string) error {
	return errors.New(errors.ErrLinkCreate, "access denied")
}

// gatedFiles blocks the first EnsureDirectory until released
type gatedFiles struct {
	Files
	entered chan struct{}
	release chan struct{}
}

func (g *gatedFiles) EnsureDirectory(path string) error {
	close(g.entered)
	<-g.release
	return g.Files.EnsureDirectory(path)
}

func newRunner(t *testing.T, env *testutil.TestEnvironment, opts Options) *Runner {
	t.Helper()
	if opts.Links == nil {
		opts.Links = link.NewSymlinkStrategy()
	}
	if opts.Files == nil {
		opts.Files = fileops.New(env.FS, opts.Links)
	}
	if opts.Store == nil {
		opts.Store = state.NewMemoryStore()
	}
	return NewRunner(opts)
}

func classify(t *testing.T, path string) types.LinkState {
	t.Helper()
	st, err := paths.Classify(path)
	require.NoError(t, err)
	return st
}

func assertLogTags(t *testing.T, log []string, first, last string) {
	t.Helper()
	require.NotEmpty(t, log)
	assert.True(t, strings.HasPrefix(log[0], first), "first line %q", log[0])
	assert.True(t, strings.HasPrefix(log[len(log)-1], last), "last line %q", log[len(log)-1])
}

func TestMigrate(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	before := testutil.SnapshotTree(t, env.FS, env.SavesDir)
	r := newRunner(t, env, Options{})

	result := r.Migrate(env.SavesDir, env.CloudSaves())

	require.True(t, result.Success, result.Message)
	assert.Equal(t, types.OperationMigrate, result.Kind)
	assert.Equal(t, "Saves migrated to cloud successfully!", result.Message)
	assertLogTags(t, result.Log, TagMigrate, TagOK)

	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.CloudSaves()))
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.SavesDir))
	assert.Equal(t, types.StateRegularDirectory, classify(t, env.SavesDir).Kind)
	assert.False(t, r.HasBackup())
}

func TestMigrate_Preconditions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	testutil.CreateDirT(t, env.FS, env.CloudSaves())
	linked := filepath.Join(env.Root, "linked")
	testutil.CreateSymlinkT(t, env.FS, env.CloudSaves(), linked)

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"empty path", "  ", "empty path"},
		{"missing source", filepath.Join(env.Root, "nope"), "does not exist"},
		{"already linked", linked, "already linked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newRunner(t, env, Options{}).Migrate(tt.source, env.CloudSaves())
			assert.False(t, result.Success)
			assert.Contains(t, result.Message, tt.want)
			assertLogTags(t, result.Log, TagMigrate, TagError)
		})
	}
}

func TestLink_RoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	before := testutil.SnapshotTree(t, env.FS, env.SavesDir)
	r := newRunner(t, env, Options{})

	result := r.Link(env.SavesDir, env.CloudSaves(), env.BackupRoot)
	require.True(t, result.Success, result.Message)
	assertLogTags(t, result.Log, TagLink, TagOK)

	st := classify(t, env.SavesDir)
	assert.Equal(t, types.StateLink, st.Kind)
	assert.Equal(t, env.CloudSaves(), st.Target)
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.CloudSaves()))

	record, ok := r.CurrentBackup()
	require.True(t, ok)
	assert.Equal(t, env.SavesDir, record.OriginalSource)
	assert.True(t, paths.IsWithin(env.BackupRoot, record.BackupPath))
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, record.BackupPath))

	result = r.Restore(env.SavesDir)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Backup restored successfully!", result.Message)
	assertLogTags(t, result.Log, TagRestore, TagOK)

	assert.Equal(t, types.StateRegularDirectory, classify(t, env.SavesDir).Kind)
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.SavesDir))
	assert.False(t, r.HasBackup(), "restore consumes the record")

	// the cloud copy and the backup folder are left alone
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.CloudSaves()))
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, record.BackupPath))
}

func TestLink_AlreadyLinkedMutatesNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	testutil.CreateFileTree(t, env.FS, env.CloudSaves(), saves)
	testutil.CreateSymlinkT(t, env.FS, env.CloudSaves(), env.SavesDir)
	before := testutil.SnapshotTree(t, env.FS, env.Root)

	r := newRunner(t, env, Options{})
	result := r.Link(env.SavesDir, env.CloudSaves(), env.BackupRoot)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "already linked")
	assert.Contains(t, result.Message, "Restore")
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.Root))
	assert.NoDirExists(t, env.BackupRoot)
	assert.False(t, r.HasBackup())
}

func TestLink_RejectsOverlappingFolders(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	before := testutil.SnapshotTree(t, env.FS, env.Root)
	r := newRunner(t, env, Options{})

	tests := []struct {
		name   string
		cloud  string
		backup string
	}{
		{"cloud inside saves", filepath.Join(env.SavesDir, "cloud"), env.BackupRoot},
		{"saves inside cloud", env.HomeDir, env.BackupRoot},
		{"backup inside saves", env.CloudSaves(), filepath.Join(env.SavesDir, "backups")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Link(env.SavesDir, tt.cloud, tt.backup)
			assert.False(t, result.Success)
			assert.Contains(t, result.Message, "must not")
			assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.Root))
		})
	}
}

func TestLink_CopyBeforeDelete(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	before := testutil.SnapshotTree(t, env.FS, env.SavesDir)

	var cloudAtRemoval map[string]string
	injected := stderrors.New("injected failure")
	fs := testutil.NewFailingFs(env.FS, func(op, name string) error {
		if op == testutil.OpRemoveAll && name == env.SavesDir {
			cloudAtRemoval = testutil.SnapshotTree(t, env.FS, env.CloudSaves())
			return injected
		}
		return nil
	})

	links := link.NewSymlinkStrategy()
	r := newRunner(t, env, Options{Links: links, Files: fileops.New(fs, links)})
	result := r.Link(env.SavesDir, env.CloudSaves(), env.BackupRoot)

	require.False(t, result.Success)
	assert.Equal(t, before, cloudAtRemoval, "cloud holds a full copy before removal starts")
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.SavesDir), "source untouched")
	assert.Equal(t, types.StateRegularDirectory, classify(t, env.SavesDir).Kind)

	record, ok := r.CurrentBackup()
	require.True(t, ok)
	assert.Contains(t, result.Message, env.CloudSaves())
	assert.Contains(t, result.Message, record.BackupPath)

	var sawBackup bool
	for _, line := range result.Log {
		if strings.HasPrefix(line, TagBackup) {
			sawBackup = true
		}
	}
	assert.True(t, sawBackup)
}

func TestLink_CopyFailureLeavesSourceIntact(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	before := testutil.SnapshotTree(t, env.FS, env.SavesDir)

	fs := testutil.NewFailingFs(env.FS, testutil.FailOn(testutil.OpOpenFile,
		filepath.Join(env.CloudSaves(), "save1.dat"), stderrors.New("quota exceeded")))
	links := link.NewSymlinkStrategy()
	r := newRunner(t, env, Options{Links: links, Files: fileops.New(fs, links)})

	result := r.Link(env.SavesDir, env.CloudSaves(), env.BackupRoot)

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "save1.dat")
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.SavesDir))
	assert.False(t, r.HasBackup(), "no backup is taken after a failed cloud copy")
	assert.NoDirExists(t, env.BackupRoot)
}

func TestLink_LinkCreationFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	before := testutil.SnapshotTree(t, env.FS, env.SavesDir)

	links := brokenLinks{link.NewSymlinkStrategy()}
	r := newRunner(t, env, Options{Links: links})
	result := r.Link(env.SavesDir, env.CloudSaves(), env.BackupRoot)

	require.False(t, result.Success)
	record, ok := r.CurrentBackup()
	require.True(t, ok)

	assert.Contains(t, result.Message, "access denied")
	assert.Contains(t, result.Message, "does not exist")
	assert.Contains(t, result.Message, env.CloudSaves())
	assert.Contains(t, result.Message, record.BackupPath)
	assert.Equal(t, types.StateMissing, classify(t, env.SavesDir).Kind)

	// both recovery sources are complete
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.CloudSaves()))
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, record.BackupPath))

	var warned bool
	for _, line := range result.Log {
		warned = warned || strings.HasPrefix(line, TagWarning)
	}
	assert.True(t, warned)
}

func TestRestore_WithoutBackup(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	testutil.CreateFileTree(t, env.FS, env.CloudSaves(), saves)
	testutil.CreateSymlinkT(t, env.FS, env.CloudSaves(), env.SavesDir)

	r := newRunner(t, env, Options{})
	result := r.Restore(env.SavesDir)

	require.True(t, result.Success, result.Message)
	assert.Contains(t, result.Message, "No backup")
	assert.Equal(t, types.StateMissing, classify(t, env.SavesDir).Kind)

	var warned bool
	for _, line := range result.Log {
		warned = warned || strings.HasPrefix(line, TagWarning)
	}
	assert.True(t, warned)
	assert.Equal(t, testutil.SnapshotTree(t, env.FS, env.CloudSaves()), map[string]string{
		"save1.dat":                 "farm day 1",
		"Farm_123/Farm_123":         "<SaveGame/>",
		"Farm_123/SaveGameInfo":     "<Farmer/>",
		"Farm_123/Farm_123_old":     "<SaveGame old/>",
		"Farm_123/SaveGameInfo_old": "<Farmer old/>",
	})
}

func TestRestore_NotALink(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	r := newRunner(t, env, Options{})

	result := r.Restore(env.SavesDir)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not a link")
	assert.Equal(t, types.StateRegularDirectory, classify(t, env.SavesDir).Kind)
}

func TestRestore_IgnoresBackupOfAnotherFolder(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	testutil.CreateDirT(t, env.FS, env.CloudSaves())
	testutil.CreateSymlinkT(t, env.FS, env.CloudSaves(), env.SavesDir)
	other := filepath.Join(env.BackupRoot, "Other-backup")
	testutil.CreateFileTree(t, env.FS, other, testutil.FileTree{"x.dat": "x"})

	store := state.NewMemoryStore()
	require.NoError(t, store.Save(types.BackupRecord{
		ID:             "other",
		OriginalSource: filepath.Join(env.Root, "elsewhere"),
		BackupPath:     other,
		CreatedAt:      time.Now(),
	}))

	r := newRunner(t, env, Options{Store: store})
	require.NoError(t, r.LoadBackup())

	result := r.Restore(env.SavesDir)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, types.StateMissing, classify(t, env.SavesDir).Kind)
	assert.True(t, r.HasBackup(), "record of another folder is kept")
}

func TestRestore_AcrossRunners(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	before := testutil.SnapshotTree(t, env.FS, env.SavesDir)
	store := state.NewFileStore(env.FS, filepath.Join(env.StateDir, "savelink", "backup.toml"))

	first := newRunner(t, env, Options{Store: store})
	require.True(t, first.Link(env.SavesDir, env.CloudSaves(), env.BackupRoot).Success)

	second := newRunner(t, env, Options{Store: store})
	assert.False(t, second.HasBackup())
	require.NoError(t, second.LoadBackup())
	assert.True(t, second.HasBackup())

	result := second.Restore(env.SavesDir)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, before, testutil.SnapshotTree(t, env.FS, env.SavesDir))

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok, "persisted record is cleared")
}

func TestRestore_MissingBackupFolder(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	r := newRunner(t, env, Options{})
	require.True(t, r.Link(env.SavesDir, env.CloudSaves(), env.BackupRoot).Success)

	record, _ := r.CurrentBackup()
	require.NoError(t, env.FS.RemoveAll(record.BackupPath))

	result := r.Restore(env.SavesDir)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, types.StateMissing, classify(t, env.SavesDir).Kind)
	assert.False(t, r.HasBackup())
}

func TestBusyGuard(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)
	links := link.NewSymlinkStrategy()
	gate := &gatedFiles{
		Files:   fileops.New(env.FS, links),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	r := newRunner(t, env, Options{Links: links, Files: gate})

	done := make(chan types.OperationResult)
	go func() {
		done <- r.Migrate(env.SavesDir, env.CloudSaves())
	}()

	<-gate.entered
	assert.True(t, r.Busy())

	second := r.Link(env.SavesDir, env.CloudSaves(), env.BackupRoot)
	assert.False(t, second.Success)
	assert.Contains(t, second.Message, "already running")
	assert.Equal(t, types.StateRegularDirectory, classify(t, env.SavesDir).Kind)

	close(gate.release)
	first := <-done
	assert.True(t, first.Success, first.Message)
	assert.False(t, r.Busy())
}

func TestSinkStreamsLog(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).WithSaves(saves)

	var streamed []string
	r := newRunner(t, env, Options{Sink: func(line string) { streamed = append(streamed, line) }})
	result := r.Migrate(env.SavesDir, env.CloudSaves())

	require.True(t, result.Success)
	assert.Equal(t, result.Log, streamed)

	// results do not share their log with later operations
	result.Log[0] = "changed"
	again := r.Migrate(env.SavesDir, env.CloudSaves())
	assert.NotEqual(t, "changed", again.Log[0])
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(Options{})
	assert.NotNil(t, r.LinkStrategy())
	assert.False(t, r.HasBackup())
	_, ok := r.CurrentBackup()
	assert.False(t, ok)
}
