// Package paths provides path handling for savelink.
//
// It covers three concerns:
//
//   - Normalization of user input (home expansion, environment variables,
//     absolute and cleaned paths) before anything is compared or stored
//   - Classification of a path as missing, a real directory, a file or a
//     link, including Windows directory junctions and dangling links
//   - The XDG application directories used for configuration, state and logs
//
// All functions are read-only queries; nothing here mutates the filesystem.
//
// # Environment Variables
//
//   - SAVELINK_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/savelink)
//   - SAVELINK_STATE_DIR: Override the state directory (default: $XDG_STATE_HOME/savelink)
package paths
