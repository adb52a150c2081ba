package cli

import (
	"github.com/spf13/cobra"
	"github.com/xxxsen/romset/internal/app"
)

func newMergeCommand() *cobra.Command {
	cmdRunner := app.NewMergeCommand()
	var runner app.IRunner = cmdRunner

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Transform a DAT's parent/clone graph according to a merge mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("mode") {
				if cfg := tryConfig(cmd); cfg != nil && cfg.Merge.Mode != "" {
					_ = cmd.Flags().Set("mode", cfg.Merge.Mode)
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
