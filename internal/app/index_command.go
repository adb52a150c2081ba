package app

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/romset/internal/cache"
	"github.com/xxxsen/romset/internal/discover"
	"github.com/xxxsen/romset/internal/fileindex"
	"github.com/xxxsen/romset/internal/progress"
	"go.uber.org/zap"
)

// IndexCommand builds a fingerprint -> candidate-files index over a
// directory tree and reports a summary.
type IndexCommand struct {
	dir       string
	outputDir string
	mounts    []string
	cachePath string

	cacheDB *sql.DB
	index   fileindex.Index
}

func NewIndexCommand() *IndexCommand { return &IndexCommand{} }

func (c *IndexCommand) Name() string { return "index" }

func (c *IndexCommand) Desc() string {
	return "build a content-fingerprint index over a directory of candidate files"
}

func (c *IndexCommand) Init(fst *pflag.FlagSet) {
	fst.StringVar(&c.dir, "dir", "", "directory to scan for candidate files")
	fst.StringVar(&c.outputDir, "output-dir", "", "configured output directory, used for the same-disk preference")
	fst.StringSliceVar(&c.mounts, "mounts", nil, "known library mount roots, for the same-volume preference")
	fst.StringVar(&c.cachePath, "cache-path", "", "sqlite fingerprint cache path, to skip re-hashing unchanged files")
}

func (c *IndexCommand) PreRun(ctx context.Context) error {
	if c.dir == "" {
		return errors.New("index requires --dir")
	}
	if c.cachePath != "" {
		db, err := cache.Open(c.cachePath)
		if err != nil {
			return err
		}
		if err := cache.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return err
		}
		cache.SetDefault(db)
		c.cacheDB = db
	}
	return nil
}

func (c *IndexCommand) Run(ctx context.Context) error {
	var files []*fileindex.File
	var err error
	if c.cacheDB != nil {
		files, err = discover.WalkWithCache(ctx, c.dir, cache.NewFingerprintCacheDAO())
	} else {
		files, err = discover.Walk(c.dir)
	}
	if err != nil {
		return err
	}

	sink := progress.NewCounters()
	idx, err := fileindex.Build(ctx, files, fileindex.Options{OutputDir: c.outputDir, MountRoots: c.mounts}, sink)
	if err != nil {
		return err
	}
	c.index = idx

	snap := sink.Snapshot()
	logutil.GetLogger(ctx).Info("indexed candidate files",
		zap.Int("scanned", snap.Total),
		zap.Int("errors", snap.Errors),
		zap.Int("distinct_fingerprints", idx.Len()),
	)
	return nil
}

// Index returns the built index, populated after Run.
func (c *IndexCommand) Index() fileindex.Index {
	return c.index
}

func (c *IndexCommand) PostRun(ctx context.Context) error {
	if c.cacheDB != nil {
		return c.cacheDB.Close()
	}
	return nil
}

func init() {
	RegisterRunner("index", func() IRunner { return NewIndexCommand() })
}
