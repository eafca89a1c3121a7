// Package controller synchronizes the local view state with the remote task
// collection. Every user action issues exactly one remote call and updates the
// store only from the server's response.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"dailytask/internal/logging"
	"dailytask/internal/service"
	"dailytask/internal/store"
)

// User-visible failure messages. Any failure of an operation collapses to
// its message.
const (
	MsgFetchFailed  = "Failed to fetch todos"
	MsgCreateFailed = "Failed to create todo"
	MsgUpdateFailed = "Failed to update todo"
	MsgDeleteFailed = "Failed to Delete Todo"

	MsgLogoutOK     = "User logged out successfully"
	MsgLogoutFailed = "Error logging out"
)

// LoginRoute is where Logout navigates after a successful call.
const LoginRoute = "/login"

var (
	// ErrEmptyText is returned by Create when the text is blank. No call is issued.
	ErrEmptyText = errors.New("text required")

	// ErrUnknownTask is returned by Toggle when the id is not in the store.
	// No call is issued.
	ErrUnknownTask = errors.New("task not found")
)

// Failure is returned when a remote call failed. Message is the fixed text
// shown to the user; Err is the underlying cause.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }
func (f *Failure) Unwrap() error { return f.Err }

// Level is the severity of a notification.
type Level int

const (
	Success Level = iota
	Error
)

// Notifier shows transient notifications outside the error slot.
type Notifier interface {
	Notify(level Level, msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, msg string)

// Notify calls f.
func (f NotifierFunc) Notify(level Level, msg string) { f(level, msg) }

// Navigator moves the front-end to another view.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f.
func (f NavigatorFunc) Navigate(route string) { f(route) }

// Credential is the locally cached session credential.
type Credential interface {
	Clear() error
}

// Controller owns the view state store and the remote task service.
type Controller struct {
	svc     service.Service
	store   *store.Store
	session Credential
	notify  Notifier
	nav     Navigator
	log     logging.Logger
	timeout time.Duration

	mu    sync.Mutex
	draft string
}

// Option configures a Controller.
type Option func(*Controller)

// WithSession sets the credential cleared on successful logout.
func WithSession(c Credential) Option {
	return func(ctl *Controller) { ctl.session = c }
}

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(ctl *Controller) { ctl.notify = n }
}

// WithNavigator sets the navigation sink.
func WithNavigator(n Navigator) Option {
	return func(ctl *Controller) { ctl.nav = n }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

// WithTimeout bounds each remote call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(ctl *Controller) { ctl.timeout = d }
}

// New creates a controller. A nil store creates a fresh one.
func New(svc service.Service, st *store.Store, opts ...Option) *Controller {
	if st == nil {
		st = store.New()
	}
	c := &Controller{
		svc:   svc,
		store: st,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the view state store.
func (c *Controller) Store() *store.Store {
	return c.store
}

// View returns a snapshot of the view state.
func (c *Controller) View() store.View {
	return c.store.Snapshot()
}

// FetchAll loads the full collection, replacing the local list.
// It is the only operation with a loading state and the only one that clears
// the error slot.
func (c *Controller) FetchAll(ctx context.Context) error {
	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	tasks, err := c.svc.FetchTodos(ctx)
	if err != nil {
		return c.fail("fetch", MsgFetchFailed, err)
	}
	c.store.ReplaceAll(tasks)
	c.store.ClearError()
	c.log.WithField("count", len(tasks)).Debug("fetched todos")
	return nil
}

// Create creates a task from text and appends the server record.
// Blank text issues no call and leaves the store unchanged.
func (c *Controller) Create(ctx context.Context, text string) (service.Task, error) {
	if strings.TrimSpace(text) == "" {
		return service.Task{}, ErrEmptyText
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	task, err := c.svc.CreateTodo(ctx, text)
	if err != nil {
		return service.Task{}, c.fail("create", MsgCreateFailed, err)
	}
	c.store.Append(task)
	c.log.WithField("id", task.ID).Debug("created todo")
	return task, nil
}

// SetDraft sets the pending input text.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Draft returns the pending input text.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Submit creates a task from the draft and clears the draft on success.
func (c *Controller) Submit(ctx context.Context) (service.Task, error) {
	text := c.Draft()
	task, err := c.Create(ctx, text)
	if err != nil {
		return task, err
	}
	c.mu.Lock()
	if c.draft == text {
		c.draft = ""
	}
	c.mu.Unlock()
	return task, nil
}

// Toggle flips the completion flag of a stored task. The full record is
// sent and the stored record is replaced with the server's answer.
func (c *Controller) Toggle(ctx context.Context, id string) (service.Task, error) {
	current, ok := c.store.Find(id)
	if !ok {
		return service.Task{}, ErrUnknownTask
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	updated, err := c.svc.UpdateTodo(ctx, current.Toggled())
	if err != nil {
		return service.Task{}, c.fail("update", MsgUpdateFailed, err)
	}
	c.store.ReplaceOne(id, updated)
	c.log.WithFields(logrus.Fields{"id": id, "completed": updated.Completed}).Debug("updated todo")
	return updated, nil
}

// Remove deletes a task by id. Removing an id that is not stored locally
// still issues the call.
func (c *Controller) Remove(ctx context.Context, id string) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	if err := c.svc.DeleteTodo(ctx, id); err != nil {
		return c.fail("delete", MsgDeleteFailed, err)
	}
	c.store.RemoveOne(id)
	c.log.WithField("id", id).Debug("deleted todo")
	return nil
}

// Logout ends the remote session. On success the local credential is
// cleared and the front-end is sent to the login view. Failures are reported
// through the notifier and never touch the error slot.
func (c *Controller) Logout(ctx context.Context) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	if err := c.svc.Logout(ctx); err != nil {
		c.log.WithError(err).Debug("logout failed")
		c.notifyf(Error, MsgLogoutFailed)
		return &Failure{Message: MsgLogoutFailed, Err: err}
	}

	if c.session != nil {
		if err := c.session.Clear(); err != nil {
			c.log.WithError(err).Warn("clear session credential")
		}
	}
	c.notifyf(Success, MsgLogoutOK)
	if c.nav != nil {
		c.nav.Navigate(LoginRoute)
	}
	return nil
}

func (c *Controller) fail(op, msg string, err error) error {
	c.log.WithFields(logrus.Fields{"op": op, "error": err}).Debug("remote call failed")
	c.store.SetError(msg)
	return &Failure{Message: msg, Err: err}
}

func (c *Controller) notifyf(level Level, msg string) {
	if c.notify != nil {
		c.notify.Notify(level, msg)
	}
}

func (c *Controller) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}
