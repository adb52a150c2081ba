package fileindex

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/romset/internal/fingerprint"
	"github.com/xxxsen/romset/internal/progress"
	"go.uber.org/zap"
)

// Index maps a content fingerprint to every known File exposing it,
// ordered best-candidate-first.
type Index map[fingerprint.FP][]*File

// Best returns the most preferred File for fp, and whether one exists.
func (idx Index) Best(fp fingerprint.FP) (*File, bool) {
	files := idx[fp]
	if len(files) == 0 {
		return nil, false
	}
	return files[0], true
}

// Len reports how many distinct fingerprints the index covers.
func (idx Index) Len() int {
	return len(idx)
}

// Build scans files, inserting each one under its with-header
// fingerprint always, and additionally under its without-header
// fingerprint when a header is detected, then sorts every bucket by the
// rule 1-5 preference ordering.
func Build(ctx context.Context, files []*File, opts Options, sink progress.Sink) (Index, error) {
	if sink == nil {
		sink = progress.NopSink{}
	}
	logger := logutil.GetLogger(ctx)
	sink.SetTotal(len(files))

	idx := make(Index)
	for _, f := range files {
		withFP, err := f.FingerprintWithHeader()
		if err != nil {
			sink.Advance(f.Path, true)
			logger.Warn("fingerprint failed", zap.String("path", f.Path), zap.Error(err))
			continue
		}
		idx[withFP] = append(idx[withFP], f)

		if withoutFP, ok, err := f.FingerprintWithoutHeader(); err != nil {
			sink.Advance(f.Path, true)
			logger.Warn("header-skip fingerprint failed", zap.String("path", f.Path), zap.Error(err))
			continue
		} else if ok {
			idx[withoutFP] = append(idx[withoutFP], f)
		}

		sink.Advance(f.Path, false)
	}

	for key, bucket := range idx {
		sortBucket(key, bucket, opts)
	}

	return idx, nil
}
