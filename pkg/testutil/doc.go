// Package testutil provides utilities for testing savelink components.
//
// Key components:
//   - TestEnvironment: temp-dir sandbox with HOME and XDG dirs redirected
//   - FileTree: declarative directory setup and snapshotting
//   - FailingFs: afero wrapper that injects failures per operation and path
//
// Copy logic is tested against afero's MemMapFs; anything that creates or
// classifies links needs EnvIsolated since only the OS filesystem has links.
package testutil
