// Package store holds the view state rendered by the task list front-ends:
// the ordered task list, the fetch phase and the error slot.
package store

import (
	"sync"

	"dailytask/internal/service"
)

// Phase is the fetch state of the view.
type Phase int

const (
	// Idle means no fetch has been started.
	Idle Phase = iota

	// Loading means a fetch is in flight. The list is not rendered.
	Loading

	// Loaded means the list is rendered.
	Loaded

	// Failed means the error message replaces the list.
	Failed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// View is a point-in-time copy of the store for rendering.
type View struct {
	Phase     Phase
	Tasks     []service.Task
	Err       string // set only when Phase is Failed
	Remaining int
}

// Store is the single source of truth for the rendered task list.
// Records are never mutated in place; every change replaces a whole record
// with one returned by the server.
type Store struct {
	mu      sync.RWMutex
	tasks   []service.Task
	loading bool
	errMsg  string
	started bool
}

// New creates an empty store in the Idle phase.
func New() *Store {
	return &Store{}
}

// ReplaceAll overwrites the entire list. When ids repeat, the first
// occurrence wins.
func (s *Store) ReplaceAll(tasks []service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(tasks))
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	s.tasks = out
}

// Append adds a task at the end of the list. A record whose id is already
// present replaces the existing one in place.
func (s *Store) Append(task service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(task.ID); i >= 0 {
		s.tasks[i] = task
		return
	}
	s.tasks = append(s.tasks, task)
}

// ReplaceOne replaces the task whose id matches. No-op if absent.
func (s *Store) ReplaceOne(id string, task service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	if task.ID != id {
		// Keep the id unique if the server answered with a different one.
		if j := s.indexLocked(task.ID); j >= 0 && j != i {
			s.tasks = append(s.tasks[:j:j], s.tasks[j+1:]...)
			if j < i {
				i--
			}
		}
	}
	s.tasks[i] = task
}

// RemoveOne removes the task whose id matches. No-op if absent.
func (s *Store) RemoveOne(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
}

// Find returns the task with the given id.
func (s *Store) Find(id string) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.tasks[i], true
	}
	return service.Task{}, false
}

// SetLoading sets the loading flag. It does not touch the error slot.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
	s.started = true
}

// SetError records a user-visible error message. It does not touch the
// loading flag. An empty message is the same as ClearError.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
	s.started = true
}

// ClearError empties the error slot.
func (s *Store) ClearError() {
	s.SetError("")
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]service.Task, len(s.tasks))
	copy(tasks, s.tasks)

	v := View{
		Phase:     s.phaseLocked(),
		Tasks:     tasks,
		Remaining: Remaining(tasks),
	}
	if v.Phase == Failed {
		v.Err = s.errMsg
	}
	return v
}

// phaseLocked folds the loading flag and error slot into one phase.
// Loading takes precedence over a recorded error.
func (s *Store) phaseLocked() Phase {
	switch {
	case s.loading:
		return Loading
	case s.errMsg != "":
		return Failed
	case s.started:
		return Loaded
	default:
		return Idle
	}
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Remaining returns the number of tasks that are not completed.
func Remaining(tasks []service.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
