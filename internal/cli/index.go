package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xxxsen/romset/internal/app"
)

func newIndexCommand() *cobra.Command {
	cmdRunner := app.NewIndexCommand()
	var runner app.IRunner = cmdRunner

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build a content-fingerprint index over a directory of candidate files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := tryConfig(cmd)
			if !cmd.Flags().Changed("output-dir") {
				if cfg != nil && cfg.Fixdat.OutputDir != "" {
					_ = cmd.Flags().Set("output-dir", cfg.Fixdat.OutputDir)
				}
			}
			if !cmd.Flags().Changed("mounts") {
				if cfg != nil && len(cfg.Mounts) > 0 {
					_ = cmd.Flags().Set("mounts", strings.Join(cfg.Mounts, ","))
				}
			}
			if !cmd.Flags().Changed("cache-path") {
				if cfg != nil && cfg.Cache.Path != "" {
					_ = cmd.Flags().Set("cache-path", cfg.Cache.Path)
				}
			}

			ctx := commandContext(cmd)
			if err := runner.PreRun(ctx); err != nil {
				return err
			}
			if err := runner.Run(ctx); err != nil {
				return err
			}
			return runner.PostRun(ctx)
		},
	}

	cmdRunner.Init(cmd.Flags())

	return cmd
}
