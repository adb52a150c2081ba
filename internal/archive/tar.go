package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// tarArchive adapts archive/tar (optionally gzip-compressed, via
// klauspost/compress for faster decoding) to Archive. Tar has no central
// directory, so List and Open each make a fresh sequential pass.
type tarArchive struct {
	path   string
	gzip   bool
}

func openTar(path string) (Archive, error) {
	gz := strings.HasSuffix(strings.ToLower(path), ".tar.gz") || strings.HasSuffix(strings.ToLower(path), ".tgz")

	// Verify the archive opens before handing back the adapter, the way
	// the zip/7z/rar adapters validate eagerly.
	f, err := os.Open(path) //nolint:gosec // path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("open tar archive %s: %w", path, err)
	}
	f.Close()

	return &tarArchive{path: path, gzip: gz}, nil
}

func (t *tarArchive) Kind() Kind { return KindTar }

func (t *tarArchive) reader() (io.ReadCloser, *tar.Reader, error) {
	f, err := os.Open(t.path) //nolint:gosec // path is operator-provided
	if err != nil {
		return nil, nil, fmt.Errorf("open tar archive %s: %w", t.path, err)
	}

	if !t.gzip {
		return f, tar.NewReader(f), nil
	}

	gzr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("open gzip stream %s: %w", t.path, err)
	}
	return readCloserPair{inner: f, outer: gzr}, tar.NewReader(gzr), nil
}

func (t *tarArchive) List() ([]Entry, error) {
	closer, tr, err := t.reader()
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var entries []Entry
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar header: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		entries = append(entries, Entry{Path: hdr.Name, Size: hdr.Size})
	}
	return entries, nil
}

func (t *tarArchive) Open(entryPath string) (io.ReadCloser, error) {
	closer, tr, err := t.reader()
	if err != nil {
		return nil, err
	}

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			closer.Close()
			return nil, EntryNotFoundError{Archive: t.path, Entry: entryPath}
		}
		if err != nil {
			closer.Close()
			return nil, fmt.Errorf("read tar header: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && entryMatches(hdr.Name, entryPath) {
			return tarEntryReader{tr: tr, closer: closer}, nil
		}
	}
}

func (t *tarArchive) Extract(entryPath, destPath string) error {
	return extractViaOpen(t, entryPath, destPath)
}

func (*tarArchive) Close() error {
	return nil // each List/Open call owns and closes its own file handle
}

// readCloserPair closes both the gzip stream and the underlying file.
type readCloserPair struct {
	inner io.Closer
	outer io.ReadCloser
}

func (p readCloserPair) Read(b []byte) (int, error) { return p.outer.Read(b) }
func (p readCloserPair) Close() error {
	err := p.outer.Close()
	if cerr := p.inner.Close(); err == nil {
		err = cerr
	}
	return err
}

// tarEntryReader streams the current tar entry and closes the whole
// underlying chain (file and, if present, the gzip stream) on Close.
type tarEntryReader struct {
	tr     *tar.Reader
	closer io.Closer
}

func (t tarEntryReader) Read(p []byte) (int, error) { return t.tr.Read(p) }
func (t tarEntryReader) Close() error                { return t.closer.Close() }
