package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/xxxsen/romset/internal/config"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// tryConfig loads configuration the same way getConfig does, but treats
// "no config file found" as absence rather than an error: several
// subcommands (merge, index, sanitize) work fine fully specified by
// flags and don't require a config file to exist. Any other load error
// (a config file that fails to decode or validate) is treated as absence
// too; the error is not reported.
func tryConfig(cmd *cobra.Command) *config.Config {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil
	}
	return cfg
}
