//go:build windows

package paths

import (
	"golang.org/x/sys/windows"
)

// IsJunction reports whether path is a directory junction (a mount point
// reparse point). Symbolic links are reported by Lstat and are not junctions.
func IsJunction(path string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}

	var data windows.Win32finddata
	handle, err := windows.FindFirstFile(p, &data)
	if err != nil {
		return false
	}
	_ = windows.FindClose(handle)

	if data.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT == 0 {
		return false
	}
	// For reparse points Reserved0 carries the reparse tag
	return data.Reserved0 == windows.IO_REPARSE_TAG_MOUNT_POINT
}
