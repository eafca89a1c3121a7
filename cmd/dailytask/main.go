// Package main is the entry point for the dailytask CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dailytask/internal/backend/googletasks"
	"dailytask/internal/backend/todohttp"
	"dailytask/internal/cli"
	"dailytask/internal/commands"
	"dailytask/internal/config"
	"dailytask/internal/logging"
	"dailytask/internal/service"
	"dailytask/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newService builds the backend selected by the configuration.
func newService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	if cfg.Backend == config.BackendGoogle {
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("oauth_client.json not found in %s: %w", cfg.Dir, session.ErrNoSession)
		}
		return googletasks.New(ctx, cfg)
	}

	// The http backend works without a stored session; the server decides.
	token, err := cfg.Session().Token()
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		return nil, err
	}
	return todohttp.New(cfg.ServerURL,
		todohttp.WithLogger(logging.New(os.Stderr, cfg.LogLevel, cfg.Debug)),
		todohttp.WithSessionToken(token),
	)
}
