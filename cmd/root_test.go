package cmd

import (
	"context"
	"os"
	"strings"
	"testing"
)

// inTempProject runs each test in a fresh directory with a fresh home so
// config lookup and the default data paths stay inside the test.
func inTempProject(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home+"/.config")
	t.Chdir(t.TempDir())
}

func TestRunVersion(t *testing.T) {
	inTempProject(t)
	if err := Run(context.Background(), []string{"version"}); err != nil {
		t.Fatalf("version: %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	inTempProject(t)
	err := Run(context.Background(), []string{"frobnicate"})
	if err == nil {
		t.Fatal("unknown command should fail")
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("error should name the command: %v", err)
	}
}

func TestRunExec(t *testing.T) {
	inTempProject(t)
	if err := Run(context.Background(), []string{"exec", "todo", "read", "book"}); err != nil {
		t.Fatalf("exec: %v", err)
	}

	data, err := os.ReadFile("data/tasks.txt")
	if err != nil {
		t.Fatalf("data file after exec: %v", err)
	}
	if got := string(data); got != "T | NOT_DONE | read book\n" {
		t.Errorf("data file contents: %q", got)
	}
}

func TestRunExecFailedCommandIsAResponse(t *testing.T) {
	inTempProject(t)
	// An invalid command line prints its message; the process still succeeds.
	if err := Run(context.Background(), []string{"exec", "frobnicate"}); err != nil {
		t.Fatalf("exec of an invalid command line: %v", err)
	}
}

func TestRunExecNoArgs(t *testing.T) {
	inTempProject(t)
	if err := Run(context.Background(), []string{"exec"}); err == nil {
		t.Fatal("exec without a command line should fail")
	}
}

func TestRunExportImport(t *testing.T) {
	inTempProject(t)
	ctx := context.Background()

	for _, cmdLine := range [][]string{
		{"exec", "todo", "read", "book"},
		{"exec", "deadline", "submit", "report", "/by", "2024-03-01", "23:59"},
		{"exec", "mark", "1"},
	} {
		if err := Run(ctx, cmdLine); err != nil {
			t.Fatalf("exec %v: %v", cmdLine, err)
		}
	}

	if err := Run(ctx, []string{"export", "snapshot.json"}); err != nil {
		t.Fatalf("export: %v", err)
	}
	snap, err := os.ReadFile("snapshot.json")
	if err != nil {
		t.Fatalf("snapshot file: %v", err)
	}
	for _, want := range []string{`"read book"`, `"submit report"`, `"DONE"`} {
		if !strings.Contains(string(snap), want) {
			t.Errorf("snapshot missing %s:\n%s", want, snap)
		}
	}

	// Wipe the data file, then restore it from the snapshot.
	if err := os.WriteFile("data/tasks.txt", nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := Run(ctx, []string{"import", "snapshot.json"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	data, err := os.ReadFile("data/tasks.txt")
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, "T | DONE | read book") || !strings.Contains(got, "D | NOT_DONE | submit report | 2024-03-01 23:59") {
		t.Errorf("data file after import: %q", got)
	}
}

func TestRunImportRejectsInvalidSnapshot(t *testing.T) {
	inTempProject(t)
	if err := os.WriteFile("snapshot.json", []byte(`{"schema_version": 1, "tasks": [{"kind": "Q", "status": "DONE", "description": "x"}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Run(context.Background(), []string{"import", "snapshot.json"}); err == nil {
		t.Fatal("import of an invalid snapshot should fail")
	}
}

func TestRunDoctor(t *testing.T) {
	inTempProject(t)
	if err := Run(context.Background(), []string{"exec", "todo", "read", "book"}); err != nil {
		t.Fatal(err)
	}
	if err := Run(context.Background(), []string{"doctor"}); err != nil {
		t.Fatalf("doctor: %v", err)
	}
}
