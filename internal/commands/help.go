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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "dailytask help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  dailytask                                      List all tasks
  dailytask list [common flags]                  List all tasks
  dailytask add [common flags] <text...>         Create a task (alias: create)
  dailytask toggle [common flags] <ref>          Flip a task open/completed (alias: done)
  dailytask rm [common flags] <ref>              Delete a task (alias: delete)
  dailytask ui [common flags]                    Open the interactive view (alias: tui)
  dailytask login [common flags] [--token <jwt>] Store credentials
  dailytask logout [common flags]                End the session (no-op when not logged in)
  dailytask help
  dailytask version

<ref> is a row number from the list output or a task id. Digits are read
as a row number; use id:<id> for an id made of digits.

Common flags:
  --config <dir>         Override config directory
  --backend http|google  Select the task service (default http)
  --server <url>         Task service base URL (http backend)
  --quiet                Suppress informational output
  --debug                Print debug logs to stderr
`
