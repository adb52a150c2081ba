package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/romset/internal/dat"
	"github.com/xxxsen/romset/internal/merge"
	"go.uber.org/zap"
)

// MergeCommand transforms a DAT's parent/clone graph between the four
// canonical merge modes and writes the result to disk.
type MergeCommand struct {
	inputPath  string
	outputPath string
	modeFlag   string

	mode   merge.Mode
	source *dat.Dat
}

func NewMergeCommand() *MergeCommand { return &MergeCommand{} }

func (c *MergeCommand) Name() string { return "merge" }

func (c *MergeCommand) Desc() string {
	return "transform a DAT's parent/clone graph according to a merge mode"
}

func (c *MergeCommand) Init(fst *pflag.FlagSet) {
	fst.StringVar(&c.inputPath, "in", "", "path to the source DAT")
	fst.StringVar(&c.outputPath, "out", "", "path to write the transformed DAT")
	fst.StringVar(&c.modeFlag, "mode", "NONE", "merge mode: NONE, SPLIT, MERGED, FULLNONMERGED")
}

func (c *MergeCommand) PreRun(ctx context.Context) error {
	if c.inputPath == "" || c.outputPath == "" {
		return errors.New("merge requires --in and --out")
	}

	mode, err := merge.ParseMode(c.modeFlag)
	if err != nil {
		return err
	}
	c.mode = mode

	source, err := dat.NewParser().ParseFile(c.inputPath)
	if err != nil {
		return fmt.Errorf("parse source dat %s: %w", c.inputPath, err)
	}
	c.source = source

	logutil.GetLogger(ctx).Info("starting merge",
		zap.String("in", c.inputPath),
		zap.String("out", c.outputPath),
		zap.String("mode", c.mode.String()),
	)
	return nil
}

func (c *MergeCommand) Run(ctx context.Context) error {
	transformed := merge.Transform(ctx, c.source, c.mode)
	if err := dat.WriteFile(transformed, c.outputPath); err != nil {
		return fmt.Errorf("write transformed dat %s: %w", c.outputPath, err)
	}
	return nil
}

func (c *MergeCommand) PostRun(ctx context.Context) error {
	logutil.GetLogger(ctx).Info("merge completed",
		zap.String("out", c.outputPath),
	)
	return nil
}

func init() {
	RegisterRunner("merge", func() IRunner { return NewMergeCommand() })
}
