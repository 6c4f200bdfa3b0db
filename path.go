package vfsmux

import "strings"

// normalizeMountPath enforces a leading separator; the empty path becomes "/".
func normalizeMountPath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}

	return path
}

// hasMountPrefix reports whether mountPath owns path.
// The remainder must be empty or start with a separator, unless mountPath itself ends with one.
func hasMountPrefix(path, mountPath string) bool {
	if !strings.HasPrefix(path, mountPath) {
		return false
	}

	rest := path[len(mountPath):]
	return rest == "" || rest[0] == '/' || strings.HasSuffix(mountPath, "/")
}

// relativePath strips mountPath from path and trims surrounding separators.
func relativePath(path, mountPath string) string {
	return strings.Trim(strings.TrimPrefix(path, mountPath), "/")
}
