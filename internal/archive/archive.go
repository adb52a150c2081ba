// Package archive provides a normalized listing/extraction contract over
// the ROM archive formats the reconciliation pipeline understands, and
// concrete adapters for each.
package archive

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Entry describes one file inside an archive.
type Entry struct {
	Path  string // path within the archive
	Size  int64
	CRC32 uint32 // zero value means "not known"
}

// Archive is the capability interface every format adapter implements.
// Implementations for Zip, Tar, Rar and SevenZip are provided; adapter
// order of preference is fixed by Kind.Priority.
type Archive interface {
	// List returns every file entry in the archive. It may legitimately
	// return an empty list for inputs that happen not to be archives in
	// practice, and it may fail on malformed input.
	List() ([]Entry, error)

	// Extract copies the named entry's bytes to destPath, guaranteeing
	// that on success destPath contains exactly the entry's bytes.
	Extract(entryPath, destPath string) error

	// Open opens the named entry for streaming reads.
	Open(entryPath string) (io.ReadCloser, error)

	// Kind identifies which archive format this adapter handles.
	Kind() Kind

	// Close releases any resources (open file handles) held by the
	// archive.
	Close() error
}

// Open opens an archive based on its file extension, dispatching to the
// matching adapter.
func Open(path string) (Archive, error) {
	switch KindOf(path) {
	case KindZip:
		return openZip(path)
	case KindTar:
		return openTar(path)
	case KindRar:
		return openRar(path)
	case KindSevenZip:
		return openSevenZip(path)
	default:
		return nil, FormatError{Path: path}
	}
}

// FormatError indicates an unsupported or unrecognized archive format.
type FormatError struct {
	Path string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("unsupported archive format: %s", e.Path)
}

// EntryNotFoundError indicates a requested entry does not exist in the
// archive.
type EntryNotFoundError struct {
	Archive string
	Entry   string
}

func (e EntryNotFoundError) Error() string {
	return fmt.Sprintf("entry %q not found in archive %q", e.Entry, e.Archive)
}

func normalizeEntryPath(p string) string {
	return filepath.ToSlash(p)
}

func entryMatches(candidate, want string) bool {
	return strings.EqualFold(normalizeEntryPath(candidate), normalizeEntryPath(want))
}

// extractViaOpen is the common Extract() implementation shared by every
// adapter: open the entry for streaming and copy it to destPath.
func extractViaOpen(a Archive, entryPath, destPath string) error {
	r, err := a.Open(entryPath)
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := createFile(destPath)
	if err != nil {
		return fmt.Errorf("create extraction target %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("extract %s: %w", entryPath, err)
	}
	return nil
}
