// Package detection looks for the game installation and its save folder in
// the places each platform conventionally keeps them.
//
// Detection is advisory. Nothing here returns an error or blocks; a miss is
// reported as "not found" so the caller can show a dismissible warning.
package detection
