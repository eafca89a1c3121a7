package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"dailytask/internal/config"
	"dailytask/internal/exitcode"
	"dailytask/internal/output"
	"dailytask/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `dailytask` (no args) and `dailytask list`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "dailytask list" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctl := mount(cfg, svc, out, errOut)
	if code := fetch(ctx, ctl, errOut); code != exitcode.Success {
		return code
	}

	output.FormatList(out, ctl.View(), cfg.Quiet)
	return exitcode.Success
}
