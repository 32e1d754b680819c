package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/types"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// Normalize turns user input into an absolute, cleaned path. Home shortcuts
// and environment variables are expanded and the parent directory is
// resolved through any symlinks. The last element is left alone: resolving
// it would make an existing link indistinguishable from its target.
func Normalize(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.New(errors.ErrInvalidPath, "empty path")
	}

	expanded := os.ExpandEnv(ExpandHome(trimmed))
	if runtime.GOOS == "windows" {
		expanded = expandWindowsEnv(expanded)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidPath, "cannot resolve %q", input)
	}
	abs = filepath.Clean(abs)

	parent, base := filepath.Split(abs)
	if base == "" {
		// filesystem root
		return abs, nil
	}

	resolvedParent, err := resolveExisting(filepath.Clean(parent))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidPath, "cannot resolve %q", input)
	}

	return filepath.Join(resolvedParent, base), nil
}

// resolveExisting resolves symlinks in the longest existing prefix of dir
// and re-appends the parts that do not exist yet.
func resolveExisting(dir string) (string, error) {
	var missing []string
	current := dir
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			parts := append([]string{resolved}, missing...)
			return filepath.Join(parts...), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		next := filepath.Dir(current)
		if next == current {
			return dir, nil
		}
		missing = append([]string{filepath.Base(current)}, missing...)
		current = next
	}
}

// ExpandHome expands a leading ~ to the home directory. Paths of the form
// ~user are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// expandWindowsEnv expands %VAR% references, the way save locations such as
// %AppData%\StardewValley\Saves are usually written down.
func expandWindowsEnv(path string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(path, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(path[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		name := path[start+1 : end]
		value, ok := os.LookupEnv(name)
		if !ok || name == "" {
			b.WriteString(path[:end])
			path = path[end:]
			continue
		}
		b.WriteString(path[:start])
		b.WriteString(value)
		path = path[end+1:]
	}
	b.WriteString(path)
	return b.String()
}

// Exists reports whether anything is present at path. Dangling links count.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path resolves to a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Classify inspects path without following it. A link whose target has
// been deleted is still classified as a link.
func Classify(path string) (types.LinkState, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.LinkState{Kind: types.StateMissing}, nil
		}
		return types.LinkState{}, errors.Wrapf(err, errors.ErrIO, "cannot inspect %s", path)
	}

	if info.Mode()&os.ModeSymlink != 0 || IsJunction(path) {
		return types.LinkState{Kind: types.StateLink, Target: linkTarget(path)}, nil
	}

	if info.IsDir() {
		return types.LinkState{Kind: types.StateRegularDirectory}, nil
	}

	return types.LinkState{Kind: types.StateRegularFile}, nil
}

// linkTarget returns the absolute target of a link, or "" when it cannot be read
func linkTarget(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return ""
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target)
}

// IsWithin reports whether child is parent itself or lies below it
func IsWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
