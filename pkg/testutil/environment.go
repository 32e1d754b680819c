package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment bundles a filesystem with the well-known locations
// savelink reads: a home with a saves folder, a cloud root and a backup root.
type TestEnvironment struct {
	Root       string
	HomeDir    string
	SavesDir   string
	CloudRoot  string
	BackupRoot string
	StateDir   string
	ConfigDir  string

	FS   afero.Fs
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. EnvIsolated also points
// HOME, XDG_CONFIG_HOME and XDG_STATE_HOME into the sandbox so nothing leaks
// into the real user directories.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/test"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		// macOS temp dirs live behind /var -> /private/var
		root, err := filepath.EvalSymlinks(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to resolve temp dir: %v", err)
		}
		env.Root = root
		env.FS = filesystem.NewOS()
	default:
		t.Fatalf("Unknown environment type %d", envType)
	}

	env.HomeDir = filepath.Join(env.Root, "home")
	env.SavesDir = filepath.Join(env.HomeDir, ".config", "StardewValley", "Saves")
	env.CloudRoot = filepath.Join(env.Root, "cloud")
	env.BackupRoot = filepath.Join(env.HomeDir, "StardewValleyCrossSaves_Backups")
	env.StateDir = filepath.Join(env.Root, "state")
	env.ConfigDir = filepath.Join(env.Root, "config")

	CreateDirT(t, env.FS, env.HomeDir)
	CreateDirT(t, env.FS, env.CloudRoot)

	if envType == EnvIsolated {
		t.Setenv("HOME", env.HomeDir)
		t.Setenv("USERPROFILE", env.HomeDir)
		t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
		t.Setenv("XDG_STATE_HOME", env.StateDir)
		t.Setenv("SAVELINK_CONFIG_DIR", "")
		t.Setenv("SAVELINK_STATE_DIR", "")
	}

	return env
}

// WithSaves creates the saves folder populated with tree
func (env *TestEnvironment) WithSaves(tree FileTree) *TestEnvironment {
	env.t.Helper()
	CreateFileTree(env.t, env.FS, env.SavesDir, tree)
	return env
}

// CloudSaves returns the default cloud target below the cloud root
func (env *TestEnvironment) CloudSaves() string {
	return filepath.Join(env.CloudRoot, "Saves")
}
