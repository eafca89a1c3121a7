// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task record.
// Field names on the wire are a fixed contract with the remote service.
type Task struct {
	ID        string `json:"_id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Toggled returns a copy of t with Completed flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}
