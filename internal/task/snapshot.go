package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Snapshot is the JSON interchange form of a whole task list, used by the
// export, import, and doctor commands.
type Snapshot struct {
	SchemaVersion int            `json:"schema_version"`
	Tasks         []SnapshotTask `json:"tasks"`
}

// SnapshotTask is one task in a snapshot. Dates use DateTimeLayout.
type SnapshotTask struct {
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Due         string `json:"due,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
}

// NewSnapshot builds a snapshot of the given tasks.
func NewSnapshot(tasks []Task) *Snapshot {
	s := &Snapshot{SchemaVersion: 1, Tasks: make([]SnapshotTask, 0, len(tasks))}
	for _, t := range tasks {
		st := SnapshotTask{
			Kind:        string(t.Kind),
			Status:      string(t.Status),
			Description: t.Description,
		}
		switch t.Kind {
		case KindDeadline:
			st.Due = t.Due.Format(DateTimeLayout)
		case KindEvent:
			st.Start = t.Start.Format(DateTimeLayout)
			st.End = t.End.Format(DateTimeLayout)
		}
		s.Tasks = append(s.Tasks, st)
	}
	return s
}

// LoadSnapshot reads and parses a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &s, nil
}

// Save writes the snapshot with 2-space indentation and a trailing newline.
func (s *Snapshot) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Decode converts the snapshot back into tasks, enforcing the same
// invariants as live construction.
func (s *Snapshot) Decode() ([]Task, error) {
	tasks := make([]Task, 0, len(s.Tasks))
	for i, st := range s.Tasks {
		var due, start, end time.Time
		var err error
		switch Kind(st.Kind) {
		case KindDeadline:
			if due, err = ParseDateTime(st.Due); err != nil {
				return nil, fmt.Errorf("tasks[%d]: %w", i, err)
			}
		case KindEvent:
			if start, err = ParseDateTime(st.Start); err != nil {
				return nil, fmt.Errorf("tasks[%d]: %w", i, err)
			}
			if end, err = ParseDateTime(st.End); err != nil {
				return nil, fmt.Errorf("tasks[%d]: %w", i, err)
			}
		}
		t, err := New(Kind(st.Kind), Status(st.Status), st.Description, due, start, end)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// ValidationOptions controls snapshot validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to the JSON Schema file. If empty or missing,
	// validation falls back to minimal structural checks.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool
}

// Validate validates the snapshot, preferring JSON Schema validation when a
// schema file is available and degrading to minimal checks with a warning
// otherwise.
func (s *Snapshot) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if opts.SchemaPath != "" {
		schemaResult := s.validateWithSchema(opts.SchemaPath)
		result.UsedSchema = schemaResult.UsedSchema
		result.Warnings = append(result.Warnings, schemaResult.Warnings...)
		if schemaResult.UsedSchema {
			if !schemaResult.Valid {
				result.Valid = false
				result.Errors = append(result.Errors, schemaResult.Errors...)
			}
			return result
		}
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	}

	s.validateMinimal(result)
	return result
}

// validateMinimal performs structural checks without a schema.
func (s *Snapshot) validateMinimal(result *ValidationResult) {
	if s.SchemaVersion != 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("schema_version: expected 1, got %d", s.SchemaVersion))
	}
	if s.Tasks == nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("tasks: missing required field"))
		return
	}
	for i := range s.Tasks {
		if _, err := (&Snapshot{SchemaVersion: 1, Tasks: s.Tasks[i : i+1]}).Decode(); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Errorf("tasks[%d]: invalid task", i))
		}
	}
}

// validateWithSchema attempts JSON Schema validation.
func (s *Snapshot) validateWithSchema(schemaPath string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", err))
		return result
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read schema file: %v", err))
		}
		return result
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
		return result
	}
	result.UsedSchema = true

	data, err := json.Marshal(s)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("marshal snapshot for validation: %w", err))
		return result
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("unmarshal snapshot for validation: %w", err))
		return result
	}

	if err := schema.Validate(obj); err != nil {
		result.Valid = false
		collectSchemaErrors(result, err)
	}
	return result
}

func collectSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	if len(ve.Causes) == 0 {
		result.Errors = append(result.Errors, fmt.Errorf("%s: %s", ve.InstanceLocation, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(result, cause)
	}
}
