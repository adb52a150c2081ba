package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/romset/internal/app"
)

func newSanitizeCommand() *cobra.Command {
	cmdRunner := app.NewSanitizeCommand()
	var runner app.IRunner = cmdRunner

	cmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Rewrite a path so it is legal to write on a target platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if err := runner.PreRun(ctx); err != nil {
				return err
			}
			if err := runner.Run(ctx); err != nil {
				return err
			}
			if err := runner.PostRun(ctx); err != nil {
				return err
			}
			fmt.Println(cmdRunner.Result())
			return nil
		},
	}

	cmdRunner.Init(cmd.Flags())

	return cmd
}
