//go:build unix

// Package mount detects whether two paths live on the same storage
// volume, driving the File Indexer's same-filesystem preference.
package mount

import (
	"os"
	"syscall"
)

// SameVolume reports whether a and b reside on the same filesystem
// volume. Either path may not exist yet; its nearest existing ancestor
// is used instead.
func SameVolume(a, b string) bool {
	da, ok := volumeID(a)
	if !ok {
		return false
	}
	db, ok := volumeID(b)
	if !ok {
		return false
	}
	return da == db
}

// volumeID returns the device ID of path's filesystem, walking up to the
// nearest existing ancestor if path itself doesn't exist yet.
func volumeID(path string) (uint64, bool) {
	for p := path; p != ""; {
		info, err := os.Stat(p)
		if err == nil {
			if stat, ok := info.Sys().(*syscall.Stat_t); ok {
				return uint64(stat.Dev), true //nolint:unconvert // Dev's width varies by platform
			}
			return 0, false
		}
		parent := parentDir(p)
		if parent == p {
			break
		}
		p = parent
	}
	return 0, false
}

func parentDir(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			if i == 0 {
				return "/"
			}
			return p[:i]
		}
	}
	return p
}
