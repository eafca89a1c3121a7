// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

var (
	// ErrUnauthorized is matched by backend errors caused by a missing,
	// expired or revoked session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is matched by backend errors for unknown task ids.
	ErrNotFound = errors.New("not found")
)

// Service defines the interface for task backend operations.
// Every method issues exactly one remote call. Commands and the controller
// never import a backend package directly.
type Service interface {
	// FetchTodos returns the full task collection in server order.
	FetchTodos(ctx context.Context) ([]Task, error)

	// CreateTodo creates an incomplete task and returns the server record.
	CreateTodo(ctx context.Context, text string) (Task, error)

	// UpdateTodo replaces the task with the given record and returns the
	// server's authoritative copy.
	UpdateTodo(ctx context.Context, task Task) (Task, error)

	// DeleteTodo deletes a task by ID.
	DeleteTodo(ctx context.Context, id string) error

	// Logout terminates the remote session.
	Logout(ctx context.Context) error
}
