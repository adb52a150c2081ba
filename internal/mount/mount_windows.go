//go:build windows

package mount

import "path/filepath"

// SameVolume reports whether a and b reside on the same drive. Windows
// doesn't expose a cheap device-id stat field the way Unix does, so this
// falls back to comparing volume names (drive letters / UNC hosts),
// matching the coarser precision that's good enough for the indexer's
// rename-vs-copy preference.
func SameVolume(a, b string) bool {
	va := filepath.VolumeName(filepath.Clean(a))
	vb := filepath.VolumeName(filepath.Clean(b))
	if va == "" || vb == "" {
		return false
	}
	return va == vb
}
