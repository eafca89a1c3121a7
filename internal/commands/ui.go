package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"dailytask/internal/config"
	"dailytask/internal/controller"
	"dailytask/internal/exitcode"
	"dailytask/internal/logging"
	"dailytask/internal/service"
	"dailytask/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command: the interactive task view.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"tui"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive task view" }
func (c *UICmd) Usage() string     { return "dailytask ui" }
func (c *UICmd) NeedsAuth() bool   { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// The view owns the terminal. Debug logs go to a file.
	logOut := io.Discard
	if cfg.Debug {
		if err := cfg.EnsureDir(); err == nil {
			if f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
				defer f.Close()
				logOut = f
			}
		}
	}

	loggedOut, err := tui.Run(ctx, svc, os.Stdin, out,
		controller.WithLogger(logging.New(logOut, cfg.LogLevel, cfg.Debug)),
		controller.WithSession(cfg.Session()),
		controller.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	if loggedOut && !cfg.Quiet {
		fmt.Fprintln(out, "logged out")
	}
	return exitcode.Success
}
