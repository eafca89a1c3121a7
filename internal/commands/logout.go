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
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "End the session and remove stored credentials" }
func (c *LogoutCmd) Usage() string     { return "dailytask logout [common flags]" }
func (c *LogoutCmd) NeedsAuth() bool   { return true }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Nothing stored locally means there is no session to end.
	if !cfg.Session().Exists() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	// The notifier prints the outcome; the credential is cleared only on success.
	ctl := mount(cfg, svc, out, errOut)
	if err := ctl.Logout(ctx); err != nil {
		return exitCodeFor(err)
	}
	return exitcode.Success
}
