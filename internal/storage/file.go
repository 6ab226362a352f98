package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taskline/taskline/internal/task"
)

// FileStore keeps the list as one pipe-delimited record per line.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at path. The file need not exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads all records. A missing file yields an empty list; a malformed
// line is an error the caller may choose to downgrade.
func (s *FileStore) Load() ([]task.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var tasks []task.Task
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := task.ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("data file line %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Save writes the full state, one record per line with a trailing newline.
func (s *FileStore) Save(tasks []task.Task) error {
	var b strings.Builder
	for i := range tasks {
		b.WriteString(tasks[i].Record())
		b.WriteByte('\n')
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}
