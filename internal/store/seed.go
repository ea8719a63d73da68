package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jholtmann/todocast/internal/domain"
)

var seedTitles = []string{
	"Learn HTMX",
	"Build Todo App",
	"Deploy to Azure",
}

// Seed inserts the demo items if the store is empty. A store that already
// holds items is left untouched.
func Seed(ctx context.Context, s domain.TodoStore) error {
	todos, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing todos: %w", err)
	}
	if len(todos) > 0 {
		slog.Info("Store already contains todos, skipping seed", "count", len(todos))
		return nil
	}

	for _, title := range seedTitles {
		if _, err := s.Create(ctx, title); err != nil {
			return fmt.Errorf("failed to seed todo %q: %w", title, err)
		}
	}
	slog.Info("Seeded store with initial todos", "count", len(seedTitles))
	return nil
}
