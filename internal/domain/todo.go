package domain

import (
	"context"
	"time"
)

// Todo is a single todo list entry. IDs are assigned by the store, are
// unique for the lifetime of the store and are never reused.
type Todo struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"isCompleted"`
	CreatedAt time.Time `json:"createdAt"`
}

// TodoStore is the persistence contract for todo items. All mutating
// operations are atomic with respect to concurrent callers; List returns
// items ordered by creation time ascending (id breaks ties).
type TodoStore interface {
	// List returns all items in creation order. Never fails on the
	// in-memory backend; the SQLite backend may surface I/O errors.
	List(ctx context.Context) ([]Todo, error)

	// Create validates and stores a new item. Returns ErrEmptyTitle if
	// title is blank or whitespace-only.
	Create(ctx context.Context, title string) (Todo, error)

	// Get returns the item with the given id or ErrTodoNotFound.
	Get(ctx context.Context, id int64) (Todo, error)

	// Toggle flips the completion flag and returns the updated item.
	// Returns ErrTodoNotFound if no item has that id.
	Toggle(ctx context.Context, id int64) (Todo, error)

	// Delete removes the item and returns its title, which the caller
	// needs for the deletion notification once the item is gone.
	// Returns ErrTodoNotFound if no item has that id.
	Delete(ctx context.Context, id int64) (string, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases backing resources.
	Close() error
}
