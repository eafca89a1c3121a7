package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"dailytask/internal/config"
	"dailytask/internal/controller"
	"dailytask/internal/exitcode"
	"dailytask/internal/logging"
	"dailytask/internal/service"
)

// cliNotifier prints notifications: successes to out (unless quiet),
// errors to errOut.
type cliNotifier struct {
	out, errOut io.Writer
	quiet       bool
}

func (n cliNotifier) Notify(level controller.Level, msg string) {
	if level == controller.Error {
		fmt.Fprintf(n.errOut, "error: %s\n", msg)
		return
	}
	if !n.quiet {
		fmt.Fprintln(n.out, msg)
	}
}

// mount builds the controller used by a single command run.
func mount(cfg *config.Config, svc service.Service, out, errOut io.Writer) *controller.Controller {
	return controller.New(svc, nil,
		controller.WithLogger(logging.New(errOut, cfg.LogLevel, cfg.Debug)),
		controller.WithSession(cfg.Session()),
		controller.WithTimeout(cfg.RequestTimeout),
		controller.WithNotifier(cliNotifier{out: out, errOut: errOut, quiet: cfg.Quiet}),
		controller.WithNavigator(controller.NavigatorFunc(func(string) {})),
	)
}

// fetch loads the collection, reporting a failure on errOut.
// Returns exitcode.Success when the store is loaded.
func fetch(ctx context.Context, ctl *controller.Controller, errOut io.Writer) int {
	if err := ctl.FetchAll(ctx); err != nil {
		return reportFailure(errOut, err)
	}
	return exitcode.Success
}

// reportFailure prints err and maps it to an exit code.
func reportFailure(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %s\n", err)
	return exitCodeFor(err)
}

// exitCodeFor maps controller and service errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, service.ErrUnauthorized):
		return exitcode.AuthError
	case errors.Is(err, controller.ErrEmptyText), errors.Is(err, controller.ErrUnknownTask):
		return exitcode.UserError
	}
	return exitcode.BackendError
}
