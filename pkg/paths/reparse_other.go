//go:build !windows

package paths

// IsJunction is always false outside Windows: junctions do not exist there.
func IsJunction(path string) bool {
	return false
}
