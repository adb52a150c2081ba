package archive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nwaples/rardecode/v2"
)

// rarArchive adapts nwaples/rardecode (sequential-only) to Archive by
// seeking its open file back to the start and re-scanning it for each
// lookup.
type rarArchive struct {
	file *os.File
	path string
}

func openRar(path string) (Archive, error) {
	f, err := os.Open(path) //nolint:gosec // path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("open rar archive %s: %w", path, err)
	}
	return &rarArchive{file: f, path: path}, nil
}

func (r *rarArchive) Kind() Kind { return KindRar }

func (r *rarArchive) List() ([]Entry, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek rar archive: %w", err)
	}

	reader, err := rardecode.NewReader(r.file)
	if err != nil {
		return nil, fmt.Errorf("create rar reader: %w", err)
	}

	var entries []Entry
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rar header: %w", err)
		}
		if header.IsDir {
			continue
		}
		entries = append(entries, Entry{Path: header.Name, Size: header.UnPackedSize})
	}
	return entries, nil
}

func (r *rarArchive) Open(entryPath string) (io.ReadCloser, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek rar archive: %w", err)
	}

	reader, err := rardecode.NewReader(r.file)
	if err != nil {
		return nil, fmt.Errorf("create rar reader: %w", err)
	}

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rar header: %w", err)
		}
		if entryMatches(header.Name, entryPath) {
			return &rarEntryReader{reader: reader}, nil
		}
	}
	return nil, EntryNotFoundError{Archive: r.path, Entry: entryPath}
}

func (r *rarArchive) Extract(entryPath, destPath string) error {
	return extractViaOpen(r, entryPath, destPath)
}

func (r *rarArchive) Close() error {
	return r.file.Close()
}

// rarEntryReader wraps a rardecode.Reader, which has no per-entry Close,
// into an io.ReadCloser.
type rarEntryReader struct {
	reader *rardecode.Reader
}

func (r *rarEntryReader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

func (*rarEntryReader) Close() error {
	return nil
}
