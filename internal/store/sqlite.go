package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/jholtmann/todocast/internal/domain"
)

// Schema for the todos table, applied on open. AUTOINCREMENT keeps ids
// unique for the lifetime of the database even after deletions.
const schema = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);
`

// SQLite is a TodoStore backed by a local SQLite database file.
// SQLite serializes writers, which gives each operation the required
// atomicity without additional locking here.
type SQLite struct {
	db    *sql.DB
	clock clockwork.Clock
}

// OpenSQLite opens (creating if necessary) the database at path and
// applies the schema. Use ":memory:" for an ephemeral database.
func OpenSQLite(path string, clock clockwork.Clock) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection avoids SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db, clock: clock}, nil
}

func (s *SQLite) List(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, completed, created_at FROM todos ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}
	return todos, nil
}

func (s *SQLite) Create(ctx context.Context, title string) (domain.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Todo{}, domain.ErrEmptyTitle
	}

	createdAt := s.clock.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (title, completed, created_at) VALUES (?, 0, ?)`,
		title, createdAt.UnixNano())
	if err != nil {
		return domain.Todo{}, fmt.Errorf("failed to insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Todo{}, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return domain.Todo{
		ID:        id,
		Title:     title,
		Completed: false,
		CreatedAt: createdAt,
	}, nil
}

func (s *SQLite) Get(ctx context.Context, id int64) (domain.Todo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, completed, created_at FROM todos WHERE id = ?`, id)
	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}
	return todo, err
}

func (s *SQLite) Toggle(ctx context.Context, id int64) (domain.Todo, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE todos SET completed = NOT completed WHERE id = ?`, id)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("failed to toggle todo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Todo{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.Todo{}, domain.ErrTodoNotFound
	}
	return s.Get(ctx, id)
}

func (s *SQLite) Delete(ctx context.Context, id int64) (string, error) {
	var title string
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM todos WHERE id = ? RETURNING title`, id).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrTodoNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to delete todo: %w", err)
	}
	return title, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var (
		todo      domain.Todo
		completed int
		createdAt int64
	)
	if err := row.Scan(&todo.ID, &todo.Title, &completed, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Todo{}, err
		}
		return domain.Todo{}, fmt.Errorf("failed to scan todo: %w", err)
	}
	todo.Completed = completed != 0
	todo.CreatedAt = time.Unix(0, createdAt).UTC()
	return todo, nil
}
