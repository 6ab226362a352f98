package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taskline/taskline/internal/task"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "tasks.txt"))
	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("missing file should yield an empty list, got %d tasks", len(tasks))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.txt")
	s := NewFileStore(path)

	due, err := task.ParseDateTime("2024-03-01 23:59")
	if err != nil {
		t.Fatal(err)
	}
	start, _ := task.ParseDateTime("2024-05-01 10:00")
	end, _ := task.ParseDateTime("2024-05-02 10:00")
	ev, err := task.NewEvent("trip", start, end)
	if err != nil {
		t.Fatal(err)
	}
	ev.Mark()

	tasks := []task.Task{task.NewTodo("read book"), task.NewDeadline("submit report", due), ev}
	if err := s.Save(tasks); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != len(tasks) {
		t.Fatalf("loaded %d tasks, want %d", len(loaded), len(tasks))
	}
	for i := range tasks {
		if loaded[i].Record() != tasks[i].Record() {
			t.Errorf("task %d: got %q, want %q", i, loaded[i].Record(), tasks[i].Record())
		}
	}
	if !loaded[2].Done() {
		t.Error("done status should survive the round trip")
	}
}

func TestFileStoreSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := NewFileStore(path)

	if err := s.Save([]task.Task{task.NewTodo("read book")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "T | NOT_DONE | read book\n" {
		t.Errorf("file contents: %q", got)
	}
}

func TestFileStoreSaveEmptyTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s := NewFileStore(path)

	if err := s.Save([]task.Task{task.NewTodo("read book")}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(nil); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	tasks, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("saving an empty list should truncate, got %d tasks", len(tasks))
	}
}

func TestFileStoreLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	contents := "T | DONE | read book\n\n  \nT | NOT_DONE | buy milk\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	tasks, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("got %d tasks, want 2", len(tasks))
	}
}

func TestFileStoreLoadMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	contents := "T | DONE | read book\nX | DONE | what\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(path).Load()
	if err == nil {
		t.Fatal("Load should fail on a malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the offending line: %v", err)
	}
}
