package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jholtmann/todocast/internal/domain"
	"github.com/jholtmann/todocast/internal/metrics"
	"github.com/jholtmann/todocast/internal/requestid"
)

func (s *Server) handleListTodos(c echo.Context) error {
	ctx := c.Request().Context()

	todos, err := s.store.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list todos", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	metrics.TodosCurrent.Set(float64(len(todos)))

	html, err := s.renderer.List(todos)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to render todo list", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.HTML(http.StatusOK, html)
}

func (s *Server) handleCreateTodo(c echo.Context) error {
	ctx := c.Request().Context()
	title := c.FormValue("title")

	todo, err := s.store.Create(ctx, title)
	if errors.Is(err, domain.ErrEmptyTitle) {
		metrics.TodoMutationsTotal.WithLabelValues("create", "invalid").Inc()
		return c.NoContent(http.StatusBadRequest)
	}
	if err != nil {
		metrics.TodoMutationsTotal.WithLabelValues("create", "error").Inc()
		slog.ErrorContext(ctx, "Failed to create todo", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	html, err := s.renderer.Item(todo)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to render todo", "todo_id", todo.ID, "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	// Broadcast only after the mutation is applied.
	origin, _ := requestid.ID(ctx)
	s.broadcaster.NotifyAdded(todo, html, origin)

	metrics.TodoMutationsTotal.WithLabelValues("create", "ok").Inc()
	slog.InfoContext(ctx, "Todo created", "todo_id", todo.ID, "title", todo.Title)

	return c.HTML(http.StatusOK, html)
}

func (s *Server) handleToggleTodo(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		metrics.TodoMutationsTotal.WithLabelValues("toggle", "not_found").Inc()
		return c.NoContent(http.StatusNotFound)
	}

	todo, err := s.store.Toggle(ctx, id)
	if errors.Is(err, domain.ErrTodoNotFound) {
		metrics.TodoMutationsTotal.WithLabelValues("toggle", "not_found").Inc()
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		metrics.TodoMutationsTotal.WithLabelValues("toggle", "error").Inc()
		slog.ErrorContext(ctx, "Failed to toggle todo", "todo_id", id, "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	html, err := s.renderer.Item(todo)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to render todo", "todo_id", todo.ID, "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	origin, _ := requestid.ID(ctx)
	s.broadcaster.NotifyToggled(todo, html, origin)

	metrics.TodoMutationsTotal.WithLabelValues("toggle", "ok").Inc()
	slog.InfoContext(ctx, "Todo toggled", "todo_id", todo.ID, "completed", todo.Completed)

	return c.HTML(http.StatusOK, html)
}

func (s *Server) handleDeleteTodo(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		metrics.TodoMutationsTotal.WithLabelValues("delete", "not_found").Inc()
		return c.NoContent(http.StatusNotFound)
	}

	title, err := s.store.Delete(ctx, id)
	if errors.Is(err, domain.ErrTodoNotFound) {
		metrics.TodoMutationsTotal.WithLabelValues("delete", "not_found").Inc()
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		metrics.TodoMutationsTotal.WithLabelValues("delete", "error").Inc()
		slog.ErrorContext(ctx, "Failed to delete todo", "todo_id", id, "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	origin, _ := requestid.ID(ctx)
	s.broadcaster.NotifyDeleted(id, title, origin)

	metrics.TodoMutationsTotal.WithLabelValues("delete", "ok").Inc()
	slog.InfoContext(ctx, "Todo deleted", "todo_id", id, "title", title)

	// Empty body signals "remove this element" to the requesting client.
	return c.NoContent(http.StatusOK)
}
