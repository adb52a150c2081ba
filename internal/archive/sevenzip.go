//nolint:dupl // archive adapters are intentionally similar but bind different libraries
package archive

import (
	"fmt"
	"io"

	"github.com/bodgit/sevenzip"
)

// sevenZipArchive adapts bodgit/sevenzip to Archive. Listing is routed
// through the process-wide mutex+retry wrapper in sevenzip_listing.go:
// the underlying library is observed to return empty results under
// concurrency, and spuriously even when serialized.
type sevenZipArchive struct {
	reader *sevenzip.ReadCloser
	path   string
}

func openSevenZip(path string) (Archive, error) {
	reader, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open 7z archive %s: %w", path, err)
	}
	return &sevenZipArchive{reader: reader, path: path}, nil
}

func (s *sevenZipArchive) Kind() Kind { return KindSevenZip }

func (s *sevenZipArchive) List() ([]Entry, error) {
	return listSevenZipWithRetry(func() ([]Entry, error) {
		entries := make([]Entry, 0, len(s.reader.File))
		for _, f := range s.reader.File {
			if f.FileInfo().IsDir() {
				continue
			}
			entries = append(entries, Entry{
				Path: f.Name,
				Size: int64(f.UncompressedSize), //nolint:gosec // archive sizes fit in int64
			})
		}
		return entries, nil
	})
}

func (s *sevenZipArchive) Open(entryPath string) (io.ReadCloser, error) {
	for _, f := range s.reader.File {
		if entryMatches(f.Name, entryPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open 7z entry %s: %w", entryPath, err)
			}
			return rc, nil
		}
	}
	return nil, EntryNotFoundError{Archive: s.path, Entry: entryPath}
}

func (s *sevenZipArchive) Extract(entryPath, destPath string) error {
	return extractViaOpen(s, entryPath, destPath)
}

func (s *sevenZipArchive) Close() error {
	return s.reader.Close()
}
