//nolint:dupl // archive adapters are intentionally similar but bind different libraries
package archive

import (
	"archive/zip"
	"fmt"
	"io"
)

// zipArchive adapts the standard library's zip reader to Archive.
type zipArchive struct {
	reader *zip.ReadCloser
	path   string
}

func openZip(path string) (Archive, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip archive %s: %w", path, err)
	}
	return &zipArchive{reader: reader, path: path}, nil
}

func (z *zipArchive) Kind() Kind { return KindZip }

func (z *zipArchive) List() ([]Entry, error) {
	entries := make([]Entry, 0, len(z.reader.File))
	for _, f := range z.reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, Entry{
			Path:  f.Name,
			Size:  int64(f.UncompressedSize64), //nolint:gosec // archive sizes fit in int64
			CRC32: f.CRC32,
		})
	}
	return entries, nil
}

func (z *zipArchive) Open(entryPath string) (io.ReadCloser, error) {
	for _, f := range z.reader.File {
		if entryMatches(f.Name, entryPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open zip entry %s: %w", entryPath, err)
			}
			return rc, nil
		}
	}
	return nil, EntryNotFoundError{Archive: z.path, Entry: entryPath}
}

func (z *zipArchive) Extract(entryPath, destPath string) error {
	return extractViaOpen(z, entryPath, destPath)
}

func (z *zipArchive) Close() error {
	return z.reader.Close()
}
