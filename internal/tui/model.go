// Package tui is the interactive terminal view of the task list: an input
// field, the list with toggle and delete, the remaining counter and a logout
// action. Every remote call runs as a tea.Cmd; the view is rendered from the
// controller's store.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dailytask/internal/controller"
	"dailytask/internal/output"
	"dailytask/internal/service"
	"dailytask/internal/store"
)

// ToastDuration is how long a notification stays visible.
const ToastDuration = 3 * time.Second

// doneMsg is sent when a remote call finished. The store already holds the
// outcome; Update only re-renders and adjusts local UI state.
type doneMsg struct {
	op  string
	err error
}

// notifyMsg carries a controller notification into the event loop.
type notifyMsg struct {
	level controller.Level
	text  string
}

// navigateMsg carries a controller navigation into the event loop.
type navigateMsg struct {
	route string
}

type toastExpiredMsg struct {
	seq int
}

type toast struct {
	level controller.Level
	text  string
	seq   int
}

// Model is the bubbletea model of the task view.
type Model struct {
	ctx    context.Context
	ctl    *controller.Controller
	keys   KeyMap
	styles styles
	help   help.Model
	input  textinput.Model

	cursor    int
	editing   bool
	toast     *toast
	toastSeq  int
	loggedOut bool
	width     int
}

// New creates the model. ctx bounds every remote call issued by the view.
func New(ctx context.Context, ctl *controller.Controller) *Model {
	in := textinput.New()
	in.Placeholder = "What needs to be done?"
	in.CharLimit = 500
	in.Prompt = "> "

	return &Model{
		ctx:    ctx,
		ctl:    ctl,
		keys:   DefaultKeyMap(),
		styles: defaultStyles(),
		help:   help.New(),
		input:  in,
	}
}

// Init loads the collection once.
func (m *Model) Init() tea.Cmd {
	return m.fetch
}

// LoggedOut reports whether the view ended because of a logout.
func (m *Model) LoggedOut() bool {
	return m.loggedOut
}

func (m *Model) fetch() tea.Msg {
	return doneMsg{op: "fetch", err: m.ctl.FetchAll(m.ctx)}
}

func (m *Model) submit() tea.Msg {
	_, err := m.ctl.Submit(m.ctx)
	return doneMsg{op: "create", err: err}
}

func (m *Model) toggle(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.ctl.Toggle(m.ctx, id)
		return doneMsg{op: "update", err: err}
	}
}

func (m *Model) remove(id string) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{op: "delete", err: m.ctl.Remove(m.ctx, id)}
	}
}

func (m *Model) logout() tea.Msg {
	return doneMsg{op: "logout", err: m.ctl.Logout(m.ctx)}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(0, msg.Width-4)
		return m, nil

	case doneMsg:
		if msg.op == "create" && msg.err == nil {
			m.input.SetValue(m.ctl.Draft())
		}
		m.clampCursor()
		return m, nil

	case notifyMsg:
		m.toastSeq++
		m.toast = &toast{level: msg.level, text: msg.text, seq: m.toastSeq}
		seq := m.toastSeq
		return m, tea.Tick(ToastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })

	case toastExpiredMsg:
		if m.toast != nil && m.toast.seq == msg.seq {
			m.toast = nil
		}
		return m, nil

	case navigateMsg:
		if msg.route == controller.LoginRoute {
			m.loggedOut = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Blur):
		m.editing = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		m.ctl.SetDraft(m.input.Value())
		return m, m.submit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctl.SetDraft(m.input.Value())
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.ctl.View()
	// Rows are hidden while loading or failed; row keys act on nothing.
	var tasks []service.Task
	if v.Phase == store.Idle || v.Phase == store.Loaded {
		tasks = v.Tasks
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if len(tasks) > 0 && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(tasks); ok {
			return m, m.toggle(t.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(tasks); ok {
			return m, m.remove(t.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.editing = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetch

	case key.Matches(msg, m.keys.Logout):
		return m, m.logout

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m *Model) selected(tasks []service.Task) (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return service.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctl.View().Tasks)
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// View renders the task view.
func (m *Model) View() string {
	if m.loggedOut {
		return m.styles.muted.Render("Logged out. Run `dailytask login` to sign in again.") + "\n"
	}

	v := m.ctl.View()
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Daily Tasks"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch v.Phase {
	case store.Loading:
		b.WriteString(m.styles.muted.Render("Loading..."))
		b.WriteString("\n")
	case store.Failed:
		b.WriteString(m.styles.err.Render(v.Err))
		b.WriteString("\n")
	default:
		m.renderRows(&b, v.Tasks)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("%d remaining Tasks", v.Remaining)))
	b.WriteString("\n")

	if m.toast != nil {
		st := m.styles.toastOK
		if m.toast.level == controller.Error {
			st = m.styles.toastErr
		}
		b.WriteString("\n")
		b.WriteString(st.Render(m.toast.text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderRows(b *strings.Builder, tasks []service.Task) {
	if len(tasks) == 0 {
		b.WriteString(m.styles.muted.Render("No tasks yet"))
		b.WriteString("\n")
		return
	}
	for i, t := range tasks {
		text := output.Title(t.Text)
		if t.Completed {
			text = m.styles.completed.Render(text)
		}
		line := output.Checkbox(t.Completed) + " " + text
		if i == m.cursor && !m.editing {
			b.WriteString(m.styles.selected.Render("> ") + line)
		} else {
			b.WriteString(m.styles.row.Render(line))
		}
		b.WriteString("\n")
	}
}
