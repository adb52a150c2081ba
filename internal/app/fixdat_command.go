package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/romset/internal/cache"
	"github.com/xxxsen/romset/internal/dat"
	"github.com/xxxsen/romset/internal/discover"
	"github.com/xxxsen/romset/internal/fileindex"
	"github.com/xxxsen/romset/internal/fingerprint"
	"github.com/xxxsen/romset/internal/fixdat"
	"github.com/xxxsen/romset/internal/progress"
	"go.uber.org/zap"
)

// FixdatCommand diffs a DAT against a directory of candidate files and
// emits a residual catalog of what is still missing.
type FixdatCommand struct {
	datPath   string
	romDir    string
	outputDir string
	mounts    []string
	cachePath string

	cacheDB     *sql.DB
	writtenPath string
}

func NewFixdatCommand() *FixdatCommand { return &FixdatCommand{} }

func (c *FixdatCommand) Name() string { return "fixdat" }

func (c *FixdatCommand) Desc() string {
	return "diff a DAT against a candidate directory and emit a residual catalog"
}

func (c *FixdatCommand) Init(fst *pflag.FlagSet) {
	fst.StringVar(&c.datPath, "dat", "", "path to the source DAT")
	fst.StringVar(&c.romDir, "dir", "", "directory of candidate files to check against the DAT")
	fst.StringVar(&c.outputDir, "output-dir", "", "directory to write the fixdat into")
	fst.StringSliceVar(&c.mounts, "mounts", nil, "known library mount roots, for the same-volume preference")
	fst.StringVar(&c.cachePath, "cache-path", "", "sqlite fingerprint cache path, to skip re-hashing unchanged files")
}

func (c *FixdatCommand) PreRun(ctx context.Context) error {
	if c.datPath == "" || c.romDir == "" || c.outputDir == "" {
		return errors.New("fixdat requires --dat, --dir, and --output-dir")
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

func (c *FixdatCommand) Run(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)

	source, err := dat.NewParser().ParseFile(c.datPath)
	if err != nil {
		return fmt.Errorf("parse dat %s: %w", c.datPath, err)
	}

	var files []*fileindex.File
	if c.cacheDB != nil {
		files, err = discover.WalkWithCache(ctx, c.romDir, cache.NewFingerprintCacheDAO())
	} else {
		files, err = discover.Walk(c.romDir)
	}
	if err != nil {
		return err
	}

	idx, err := fileindex.Build(ctx, files, fileindex.Options{OutputDir: c.outputDir, MountRoots: c.mounts}, progress.NewCounters())
	if err != nil {
		return err
	}

	candidates := matchCandidates(source, idx)

	prov := fixdat.Provenance{
		Tool:        ToolName,
		Version:     Version,
		OriginalDat: c.datPath,
		InputPaths:  []string{c.romDir},
		OutputPath:  c.outputDir,
	}

	path, err := fixdat.Generate(ctx, source, candidates, c.outputDir, prov, time.Now)
	if err != nil {
		return err
	}
	c.writtenPath = path

	if path == "" {
		logger.Info("fixdat skipped, catalog fully satisfied", zap.String("dat", c.datPath))
	}
	return nil
}

// WrittenPath returns the fixdat path produced by Run, empty when
// nothing was missing.
func (c *FixdatCommand) WrittenPath() string {
	return c.writtenPath
}

func (c *FixdatCommand) PostRun(ctx context.Context) error {
	if c.writtenPath != "" {
		logutil.GetLogger(ctx).Info("fixdat written", zap.String("path", c.writtenPath))
	}
	if c.cacheDB != nil {
		return c.cacheDB.Close()
	}
	return nil
}

// matchCandidates resolves each game's ROMs against the built index,
// producing the candidate bindings fixdat.Generate diffs against.
func matchCandidates(source *dat.Dat, idx fileindex.Index) []fixdat.ReleaseCandidate {
	candidates := make([]fixdat.ReleaseCandidate, 0, len(source.Games))
	for _, g := range source.Games {
		var bindings []fixdat.RomBinding
		for _, r := range g.Roms {
			fp := r.Fingerprint()
			if fp == "" {
				continue
			}
			if _, ok := idx.Best(fingerprint.FP(fp)); ok {
				bindings = append(bindings, fixdat.RomBinding{Rom: r, Fingerprint: fp})
			}
		}
		candidates = append(candidates, fixdat.ReleaseCandidate{Game: g, Bindings: bindings})
	}
	return candidates
}

func init() {
	RegisterRunner("fixdat", func() IRunner { return NewFixdatCommand() })
}
