package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/taskline/taskline/internal/task"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("Open with an empty path should fail")
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("fresh database should be empty, got %d tasks", len(tasks))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

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
}

func TestSaveReplacesPreviousState(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save([]task.Task{task.NewTodo("one"), task.NewTodo("two")}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save([]task.Task{task.NewTodo("three")}); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Description != "three" {
		t.Errorf("save should replace the full state, got %v", loaded)
	}
}

func TestSavePreservesOrder(t *testing.T) {
	s := openTestStore(t)

	var tasks []task.Task
	for _, desc := range []string{"d", "a", "c", "b"} {
		tasks = append(tasks, task.NewTodo(desc))
	}
	if err := s.Save(tasks); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	for i := range tasks {
		if loaded[i].Description != tasks[i].Description {
			t.Errorf("position %d: got %q, want %q", i, loaded[i].Description, tasks[i].Description)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save([]task.Task{task.NewTodo("read book")}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	loaded, err := s2.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Description != "read book" {
		t.Errorf("data should survive reopen, got %v", loaded)
	}
}
