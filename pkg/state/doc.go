// Package state holds what savelink knows between invocations and what it
// can read back from disk: the persisted backup record and an inspection of
// a save location's link.
package state
