package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"dailytask/internal/controller"
	"dailytask/internal/service"
)

// Run starts the interactive view on the given terminal streams and blocks
// until the user quits, logs out or ctx is cancelled. Notifications and
// navigation of the controller are delivered to the running program.
func Run(ctx context.Context, svc service.Service, in io.Reader, out io.Writer, opts ...controller.Option) (loggedOut bool, err error) {
	var p *tea.Program

	opts = append(opts,
		controller.WithNotifier(controller.NotifierFunc(func(level controller.Level, msg string) {
			p.Send(notifyMsg{level: level, text: msg})
		})),
		controller.WithNavigator(controller.NavigatorFunc(func(route string) {
			p.Send(navigateMsg{route: route})
		})),
	)
	m := New(ctx, controller.New(svc, nil, opts...))

	p = tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		return false, fmt.Errorf("run terminal ui: %w", err)
	}
	return m.LoggedOut(), nil
}
