package fileindex

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/xxxsen/romset/internal/fingerprint"
	"github.com/xxxsen/romset/internal/mount"
)

// Options parametrizes the preference ordering.
type Options struct {
	// OutputDir is the configured output directory; files already inside
	// it are deprioritized (rule 3), and, when that rule ties, files on a
	// different volume than it are deprioritized (rule 4: a same-volume
	// move is cheaper than a cross-volume copy).
	OutputDir string
	// MountRoots lists other known library locations (e.g. additional
	// drives a collection spans). A file sharing a volume with any of
	// these is preferred the same way a file already on OutputDir's
	// volume is: referencing it is a rename, not a cross-volume copy.
	MountRoots []string
}

// sortBucket orders the files under a single fingerprint key by the
// strict preference relation: lower is preferred, first difference
// decides.
func sortBucket(key fingerprint.FP, files []*File, opts Options) {
	sort.SliceStable(files, func(i, j int) bool {
		return less(key, files[i], files[j], opts)
	})
}

func less(key fingerprint.FP, a, b *File, opts Options) bool {
	if pa, pb := headerMatchValue(key, a), headerMatchValue(key, b); pa != pb {
		return pa < pb
	}
	if pa, pb := a.Kind.Priority(), b.Kind.Priority(); pa != pb {
		return pa < pb
	}
	if pa, pb := alreadyInOutputValue(a, opts), alreadyInOutputValue(b, opts); pa != pb {
		return pa < pb
	}
	if pa, pb := sameVolumeValue(a, opts), sameVolumeValue(b, opts); pa != pb {
		return pa < pb
	}
	return a.Path < b.Path
}

// headerMatchValue implements rule 1: 1 if the file has a header and
// this bucket's key is the without-header fingerprint, else 0 (prefer
// the file whose natural, raw bytes match).
func headerMatchValue(key fingerprint.FP, f *File) int {
	has, err := f.HasHeader()
	if err != nil || !has {
		return 0
	}
	withoutFP, ok, err := f.FingerprintWithoutHeader()
	if err != nil || !ok {
		return 0
	}
	if key == withoutFP {
		withFP, err := f.FingerprintWithHeader()
		if err == nil && key != withFP {
			return 1
		}
	}
	return 0
}

// alreadyInOutputValue implements rule 3.
func alreadyInOutputValue(f *File, opts Options) int {
	if opts.OutputDir == "" {
		return 0
	}
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return 0
	}
	outAbs, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return 0
	}
	rel, err := filepath.Rel(outAbs, abs)
	if err != nil {
		return 0
	}
	if rel == "." || (!strings.HasPrefix(rel, "..") && rel != "") {
		return 1
	}
	return 0
}

// sameVolumeValue implements rule 4: preferred (0) if f shares a volume
// with the output directory or with any other known library root.
func sameVolumeValue(f *File, opts Options) int {
	if opts.OutputDir == "" && len(opts.MountRoots) == 0 {
		return 1
	}
	if opts.OutputDir != "" && mount.SameVolume(f.Path, opts.OutputDir) {
		return 0
	}
	for _, root := range opts.MountRoots {
		if root != "" && mount.SameVolume(f.Path, root) {
			return 0
		}
	}
	return 1
}
