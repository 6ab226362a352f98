// Package storage persists the task list between sessions.
package storage

import (
	"fmt"

	"github.com/taskline/taskline/internal/config"
	"github.com/taskline/taskline/internal/storage/sqlite"
	"github.com/taskline/taskline/internal/task"
)

// Store loads the whole task list at startup and writes the whole list back
// after every mutation.
type Store interface {
	Load() ([]task.Task, error)
	Save(tasks []task.Task) error
	Close() error
}

// Open selects and opens the store named by the config.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Storage {
	case "", config.StorageFile:
		return NewFileStore(cfg.DataFile), nil
	case config.StorageSQLite:
		return sqlite.Open(cfg.DBFile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
