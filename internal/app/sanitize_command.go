package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/romset/internal/pathsan"
	"go.uber.org/zap"
)

// SanitizeCommand rewrites a path component so it is legal on a target
// platform's separator.
type SanitizeCommand struct {
	path      string
	separator string

	result string
}

func NewSanitizeCommand() *SanitizeCommand { return &SanitizeCommand{} }

func (c *SanitizeCommand) Name() string { return "sanitize" }

func (c *SanitizeCommand) Desc() string {
	return "rewrite a path so it is legal to write on a target platform"
}

func (c *SanitizeCommand) Init(fst *pflag.FlagSet) {
	fst.StringVar(&c.path, "path", "", "path to sanitize")
	fst.StringVar(&c.separator, "sep", "/", "target path separator: / or \\")
}

func (c *SanitizeCommand) PreRun(ctx context.Context) error {
	if c.path == "" {
		return errors.New("sanitize requires --path")
	}
	if c.separator != "/" && c.separator != `\` {
		return fmt.Errorf("sanitize --sep must be / or \\, got %q", c.separator)
	}
	return nil
}

func (c *SanitizeCommand) Run(ctx context.Context) error {
	c.result = pathsan.Sanitize(c.path, c.separator[0])
	return nil
}

// Result returns the sanitized path computed during Run.
func (c *SanitizeCommand) Result() string {
	return c.result
}

func (c *SanitizeCommand) PostRun(ctx context.Context) error {
	logutil.GetLogger(ctx).Info("sanitize completed", zap.String("result", c.result))
	return nil
}

func init() {
	RegisterRunner("sanitize", func() IRunner { return NewSanitizeCommand() })
}
