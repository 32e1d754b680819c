// Package fileops implements the filesystem side of savelink operations:
// ensuring directories, best-effort merge copies, timestamped backups and
// removal that refuses to follow links.
//
// All functions go through an afero.Fs so copy semantics can be tested in
// memory. Link detection is delegated to a Detector, normally the platform
// link.Strategy, so a Windows junction is treated exactly like a symlink.
package fileops
