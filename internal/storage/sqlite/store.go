// Package sqlite provides a SQLite-backed task store.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/taskline/taskline/internal/task"
)

// Store persists the task list in SQLite. Save is a full-state flush so
// positions always stay dense.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite task store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(task.DateTimeLayout), Valid: true}
}

func parseNullTime(v sql.NullString) (time.Time, error) {
	if !v.Valid {
		return time.Time{}, nil
	}
	return task.ParseDateTime(v.String)
}

// Load reads all tasks ordered by position.
func (s *Store) Load() ([]task.Task, error) {
	rows, err := s.db.Query(
		`SELECT kind, status, description, due_at, start_at, end_at
		 FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var kind, status, description string
		var dueAt, startAt, endAt sql.NullString
		if err := rows.Scan(&kind, &status, &description, &dueAt, &startAt, &endAt); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		due, err := parseNullTime(dueAt)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", description, err)
		}
		start, err := parseNullTime(startAt)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", description, err)
		}
		end, err := parseNullTime(endAt)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", description, err)
		}
		t, err := task.New(task.Kind(kind), task.Status(status), description, due, start, end)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", description, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return tasks, nil
}

// Save replaces the stored list with the given tasks in one transaction.
func (s *Store) Save(tasks []task.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear tasks: %w", err)
	}
	for i := range tasks {
		t := &tasks[i]
		_, err := tx.Exec(
			`INSERT INTO tasks (position, kind, status, description, due_at, start_at, end_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, string(t.Kind), string(t.Status), t.Description,
			nullTime(t.Due), nullTime(t.Start), nullTime(t.End),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert task %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
