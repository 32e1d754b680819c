// Package filesystem provides the afero filesystems savelink copies through.
//
// Production code runs on NewOS. Tests that only exercise copy logic use
// NewMemory; anything touching links needs the real OS filesystem since the
// in-memory one has no symlink support.
package filesystem
