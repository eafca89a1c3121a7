package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"dailytask/internal/config"
	"dailytask/internal/exitcode"
	"dailytask/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "dailytask rm <row|id|id:<id>>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ctl := mount(cfg, svc, out, errOut)

	// Ids go straight to the server; row numbers need the list first.
	id := ref.ID
	if id == "" {
		if code := fetch(ctx, ctl, errOut); code != exitcode.Success {
			return code
		}
		task, err := ref.Resolve(ctl.View().Tasks)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		id = task.ID
	}

	if err := ctl.Remove(ctx, id); err != nil {
		return reportFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
