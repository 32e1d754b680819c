// Package operations runs the three savelink operations: Migrate, Link and
// Restore.
//
// Each operation is a fixed sequence of path, file and link steps. Steps are
// recorded as tagged log lines and nothing is returned as an error: a failing
// step ends the operation with a failed types.OperationResult that carries
// the message and every line logged so far, so the caller can tell exactly
// how far it got.
//
// Link never deletes anything before the cloud copy and the backup both
// succeeded. The single backup record slot lives on the Runner and is
// mirrored to a state.Store so it survives between processes.
package operations
