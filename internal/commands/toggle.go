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
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command. It flips the completion flag, so
// running it twice restores the task.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between open and completed" }
func (c *ToggleCmd) Usage() string     { return "dailytask toggle <row|id|id:<id>>" }
func (c *ToggleCmd) NeedsAuth() bool   { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// The task must be in the loaded list before it can be toggled.
	ctl := mount(cfg, svc, out, errOut)
	if code := fetch(ctx, ctl, errOut); code != exitcode.Success {
		return code
	}

	task, err := ref.Resolve(ctl.View().Tasks)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	updated, err := ctl.Toggle(ctx, task.ID)
	if err != nil {
		return reportFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "%s %s\n", output.Checkbox(updated.Completed), output.Title(updated.Text))
	}
	return exitcode.Success
}
