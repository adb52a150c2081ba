// Package fileindex builds a multi-index from content fingerprint to
// candidate files, applying a strict, deterministic preference ordering
// to resolve duplicates.
package fileindex

import (
	"io"
	"sync"

	"github.com/xxxsen/romset/internal/archive"
	"github.com/xxxsen/romset/internal/fingerprint"
	"github.com/xxxsen/romset/internal/header"
)

// Opener produces a fresh, independently closable stream of a file's
// bytes. Called more than once: once to sniff a header, and again for
// each fingerprint variant actually needed.
type Opener func() (io.ReadCloser, error)

// File is a located byte sequence: either a plain file on disk or an
// entry inside an archive. Two Files with equal fingerprints are
// byte-equivalent at that viewpoint.
type File struct {
	// Path is the on-disk path: the file itself, or the archive file
	// when EntryPath is set.
	Path string
	// EntryPath is the in-archive entry path; empty for a plain file.
	EntryPath string
	Size      int64
	// Kind is the archive format this file lives in, or KindNone for a
	// plain, un-archived file.
	Kind archive.Kind

	open Opener

	headerOnce    sync.Once
	headerDesc    *header.Descriptor
	headerPresent bool
	headerErr     error

	withHeaderOnce sync.Once
	withHeaderFP   fingerprint.FP
	withHeaderErr  error

	withoutHeaderOnce sync.Once
	withoutHeaderFP   fingerprint.FP
	withoutHeaderErr  error
}

// New builds a plain, un-archived File.
func New(path string, size int64, open Opener) *File {
	return &File{Path: path, Size: size, Kind: archive.KindNone, open: open}
}

// NewArchiveEntry builds a File representing an entry inside an archive.
func NewArchiveEntry(archivePath, entryPath string, size int64, kind archive.Kind, open Opener) *File {
	return &File{Path: archivePath, EntryPath: entryPath, Size: size, Kind: kind, open: open}
}

// IsArchiveEntry reports whether this File lives inside an archive.
func (f *File) IsArchiveEntry() bool {
	return f.EntryPath != ""
}

// Preload seeds a File's memoised fingerprints from an external cache,
// so later calls never reopen the file. withoutFP/hasHeader describe
// whether a without-header view exists at all; pass hasHeader=false and
// an empty withoutFP when the file carries no known ROM header.
func (f *File) Preload(desc *header.Descriptor, withFP, withoutFP fingerprint.FP, hasHeader bool) {
	f.headerOnce.Do(func() {
		f.headerPresent = hasHeader
		if hasHeader {
			f.headerDesc = desc
		}
	})
	f.withHeaderOnce.Do(func() {
		f.withHeaderFP = withFP
	})
	if hasHeader {
		f.withoutHeaderOnce.Do(func() {
			f.withoutHeaderFP = withoutFP
		})
	}
}

// HasHeader reports whether a known ROM header prefix was detected,
// memoising the sniff on first call.
func (f *File) HasHeader() (bool, error) {
	f.sniffHeader()
	return f.headerPresent, f.headerErr
}

func (f *File) sniffHeader() {
	f.headerOnce.Do(func() {
		r, err := f.open()
		if err != nil {
			f.headerErr = err
			return
		}
		defer r.Close()

		desc, _, err := header.Sniff(r)
		if err != nil {
			f.headerErr = err
			return
		}
		f.headerDesc = desc
		f.headerPresent = desc != nil
	})
}

// FingerprintWithHeader returns the fingerprint of the file's raw bytes,
// memoised on first computation.
func (f *File) FingerprintWithHeader() (fingerprint.FP, error) {
	f.withHeaderOnce.Do(func() {
		r, err := f.open()
		if err != nil {
			f.withHeaderErr = err
			return
		}
		defer r.Close()

		fp, err := fingerprint.Of(r)
		if err != nil {
			f.withHeaderErr = err
			return
		}
		f.withHeaderFP = fp
	})
	return f.withHeaderFP, f.withHeaderErr
}

// FingerprintWithoutHeader returns the fingerprint computed after
// skipping the detected header prefix. ok is false when the file has no
// detected header, in which case there is no separate without-header
// view.
func (f *File) FingerprintWithoutHeader() (fp fingerprint.FP, ok bool, err error) {
	has, err := f.HasHeader()
	if err != nil || !has {
		return "", false, err
	}

	f.withoutHeaderOnce.Do(func() {
		r, err := f.open()
		if err != nil {
			f.withoutHeaderErr = err
			return
		}
		defer r.Close()

		if _, err := io.CopyN(io.Discard, r, int64(f.headerDesc.SkipBytes)); err != nil && err != io.EOF {
			f.withoutHeaderErr = err
			return
		}

		computed, err := fingerprint.Of(r)
		if err != nil {
			f.withoutHeaderErr = err
			return
		}
		f.withoutHeaderFP = computed
	})
	return f.withoutHeaderFP, true, f.withoutHeaderErr
}
