// Package discover walks a filesystem root and produces fileindex.Files
// for every plain file and every entry inside a recognized archive,
// bridging the filesystem and the File Indexer core.
package discover

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xxxsen/romset/internal/archive"
	"github.com/xxxsen/romset/internal/cache"
	"github.com/xxxsen/romset/internal/fileindex"
	"github.com/xxxsen/romset/internal/fingerprint"
)

// Walk recursively visits root, returning a File for every regular file
// found directly and, for every file with a recognized archive
// extension, a File per listed entry instead of the archive itself.
func Walk(root string) ([]*fileindex.File, error) {
	return walk(root, nil)
}

// WalkWithCache behaves like Walk, but consults dao for every plain,
// un-archived file before hashing it: a modtime-matching cache hit
// seeds the File's fingerprints directly, and a miss is hashed once
// here and written back, so later runs over an unchanged collection
// skip rehashing entirely. Archive entries aren't cached, since their
// containing archive's own modtime is the more natural cache key and
// re-listing is comparatively cheap.
func WalkWithCache(ctx context.Context, root string, dao *cache.FingerprintCacheDAO) ([]*fileindex.File, error) {
	return walk(root, func(f *fileindex.File, path string, modTime int64) {
		primeFromCache(ctx, f, dao, path, modTime)
	})
}

func walk(root string, prime func(f *fileindex.File, path string, modTime int64)) ([]*fileindex.File, error) {
	var files []*fileindex.File

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		if archive.IsArchiveExtension(path) {
			entries, err := archiveFiles(path)
			if err != nil {
				// A malformed archive is dropped, not fatal: returning the
				// error here would abort the whole walk over one bad file.
				return nil //nolint:nilerr // per-file failures are absorbed, not propagated
			}
			files = append(files, entries...)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // same absorb-and-drop policy as above
		}
		f := plainFile(path, info.Size())
		if prime != nil {
			prime(f, path, info.ModTime().Unix())
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// primeFromCache seeds f's fingerprints from dao on a modtime-matching
// hit, or computes and stores them on a miss.
func primeFromCache(ctx context.Context, f *fileindex.File, dao *cache.FingerprintCacheDAO, path string, modTime int64) {
	if dao == nil {
		return
	}

	if entry, ok, err := dao.Lookup(ctx, path, modTime); err == nil && ok {
		hasHeader := entry.WithoutHeaderFP != ""
		f.Preload(nil, fingerprint.FP(entry.WithHeaderFP), fingerprint.FP(entry.WithoutHeaderFP), hasHeader)
		return
	}

	withFP, err := f.FingerprintWithHeader()
	if err != nil {
		return
	}
	withoutFP, _, err := f.FingerprintWithoutHeader()
	if err != nil {
		return
	}

	_ = dao.Upsert(ctx, path, modTime, cache.Entry{
		WithHeaderFP:    string(withFP),
		WithoutHeaderFP: string(withoutFP),
	})
}

func plainFile(path string, size int64) *fileindex.File {
	return fileindex.New(path, size, func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

func archiveFiles(archivePath string) ([]*fileindex.File, error) {
	a, err := archive.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	entries, err := a.List()
	if err != nil {
		return nil, err
	}

	files := make([]*fileindex.File, 0, len(entries))
	for _, e := range entries {
		entryPath := e.Path
		files = append(files, fileindex.NewArchiveEntry(archivePath, entryPath, e.Size, a.Kind(), func() (io.ReadCloser, error) {
			opened, err := archive.Open(archivePath)
			if err != nil {
				return nil, err
			}
			r, err := opened.Open(entryPath)
			if err != nil {
				opened.Close()
				return nil, err
			}
			return &closeBoth{ReadCloser: r, archive: opened}, nil
		}))
	}
	return files, nil
}

// closeBoth closes both the entry reader and the archive handle that
// produced it, since each opener call owns an independent archive open.
type closeBoth struct {
	io.ReadCloser
	archive archive.Archive
}

func (c *closeBoth) Close() error {
	err := c.ReadCloser.Close()
	if cerr := c.archive.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
