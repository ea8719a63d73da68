package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/jholtmann/todocast/internal/domain"
)

// Memory is an in-memory TodoStore for single-instance mode. A single
// mutex serializes all operations, so every operation is atomic and no
// caller observes a torn intermediate state.
type Memory struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	todos  map[int64]domain.Todo
	nextID int64
}

func NewMemory(clock clockwork.Clock) *Memory {
	return &Memory{
		clock:  clock,
		todos:  make(map[int64]domain.Todo),
		nextID: 1,
	}
}

func (s *Memory) List(_ context.Context) ([]domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := make([]domain.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		todos = append(todos, t)
	}
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].ID < todos[j].ID
		}
		return todos[i].CreatedAt.Before(todos[j].CreatedAt)
	})
	return todos, nil
}

func (s *Memory) Create(_ context.Context, title string) (domain.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Todo{}, domain.ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo := domain.Todo{
		ID:        s.nextID,
		Title:     title,
		Completed: false,
		CreatedAt: s.clock.Now().UTC(),
	}
	s.nextID++
	s.todos[todo.ID] = todo
	return todo, nil
}

func (s *Memory) Get(_ context.Context, id int64) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		return domain.Todo{}, domain.ErrTodoNotFound
	}
	return todo, nil
}

func (s *Memory) Toggle(_ context.Context, id int64) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		return domain.Todo{}, domain.ErrTodoNotFound
	}
	todo.Completed = !todo.Completed
	s.todos[id] = todo
	return todo, nil
}

func (s *Memory) Delete(_ context.Context, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		return "", domain.ErrTodoNotFound
	}
	delete(s.todos, id)
	return todo.Title, nil
}

func (s *Memory) Ping(_ context.Context) error {
	return nil
}

func (s *Memory) Close() error {
	return nil
}
