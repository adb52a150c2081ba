package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/xxxsen/romset/internal/cli/common"
	"github.com/xxxsen/romset/internal/config"
)

// ConfigFlag is the CLI flag name used to specify an explicit config path.
const ConfigFlag = common.ConfigFlag

type contextKey string

const cfgContextKey contextKey = "romset/config"

func configFromContext(cmd *cobra.Command) (*config.Config, bool) {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(cfgContextKey).(*config.Config); ok {
			return cfg, true
		}
	}
	if root := cmd.Root(); root != cmd {
		if ctx := root.Context(); ctx != nil {
			if cfg, ok := ctx.Value(cfgContextKey).(*config.Config); ok {
				return cfg, true
			}
		}
	}
	return nil, false
}

// ensureConfig resolves, caches, and returns the configuration for cmd,
// loading it from disk on first access.
func ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg, ok := configFromContext(cmd); ok {
		return cfg, nil
	}

	cfgPath, _ := cmd.Root().PersistentFlags().GetString(ConfigFlag)
	cfg, err := common.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	setConfigContext(cmd.Root(), cfg)
	if cmd != cmd.Root() {
		setConfigContext(cmd, cfg)
	}

	return cfg, nil
}

// getConfig returns the configuration for cmd, loading it if needed.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg, ok := configFromContext(cmd); ok {
		return cfg, nil
	}
	return ensureConfig(cmd)
}

func setConfigContext(cmd *cobra.Command, cfg *config.Config) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cfgContextKey, cfg))
}
