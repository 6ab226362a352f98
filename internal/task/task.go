package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the only accepted date-time format, minute precision.
const DateTimeLayout = "2006-01-02 15:04"

// Status represents a task's completion state.
type Status string

const (
	StatusDone    Status = "DONE"
	StatusNotDone Status = "NOT_DONE"
)

// Kind tags the task variant.
type Kind string

const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

// ErrStartAfterEnd is returned when an event's start falls after its end.
// Its text is shown to the user verbatim.
var ErrStartAfterEnd = errors.New("the start time must not be after the end time")

// Task is a single tracked item. Kind selects which of the date fields are
// meaningful: none for a todo, Due for a deadline, Start/End for an event.
type Task struct {
	Kind        Kind
	Status      Status
	Description string
	Due         time.Time
	Start       time.Time
	End         time.Time
}

// NewTodo creates a not-done todo with the given description.
func NewTodo(description string) Task {
	return Task{Kind: KindTodo, Status: StatusNotDone, Description: description}
}

// NewDeadline creates a not-done deadline due at the given time.
func NewDeadline(description string, due time.Time) Task {
	return Task{Kind: KindDeadline, Status: StatusNotDone, Description: description, Due: due}
}

// NewEvent creates a not-done event. Construction fails with ErrStartAfterEnd
// if start is after end.
func NewEvent(description string, start, end time.Time) (Task, error) {
	if start.After(end) {
		return Task{}, ErrStartAfterEnd
	}
	return Task{Kind: KindEvent, Status: StatusNotDone, Description: description, Start: start, End: end}, nil
}

// New assembles a task from already-parsed fields, applying the same
// invariants as the command constructors. It is the shared entry point for
// the record codec and the storage backends.
func New(kind Kind, status Status, description string, due, start, end time.Time) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, fmt.Errorf("task description is blank")
	}
	switch status {
	case StatusDone, StatusNotDone:
	default:
		return Task{}, fmt.Errorf("unknown status %q", status)
	}
	switch kind {
	case KindTodo:
		return Task{Kind: kind, Status: status, Description: description}, nil
	case KindDeadline:
		return Task{Kind: kind, Status: status, Description: description, Due: due}, nil
	case KindEvent:
		if start.After(end) {
			return Task{}, ErrStartAfterEnd
		}
		return Task{Kind: kind, Status: status, Description: description, Start: start, End: end}, nil
	default:
		return Task{}, fmt.Errorf("unknown task kind %q", kind)
	}
}

// Mark sets the task's status to done.
func (t *Task) Mark() {
	t.Status = StatusDone
}

// Unmark sets the task's status to not done.
func (t *Task) Unmark() {
	t.Status = StatusNotDone
}

// Done reports whether the task is marked done.
func (t *Task) Done() bool {
	return t.Status == StatusDone
}

func (t *Task) marker() string {
	if t.Status == StatusDone {
		return "[X]"
	}
	return "[ ]"
}

// Render returns the canonical display form, e.g. "[T][ ] read book" or
// "[D][X] report (by: 2024-03-01 23:59)".
func (t *Task) Render() string {
	switch t.Kind {
	case KindDeadline:
		return fmt.Sprintf("[D]%s %s (by: %s)", t.marker(), t.Description, t.Due.Format(DateTimeLayout))
	case KindEvent:
		return fmt.Sprintf("[E]%s %s (from: %s to: %s)", t.marker(), t.Description,
			t.Start.Format(DateTimeLayout), t.End.Format(DateTimeLayout))
	default:
		return fmt.Sprintf("[T]%s %s", t.marker(), t.Description)
	}
}

// Record returns the pipe-delimited form written to the data file, e.g.
// "E | NOT_DONE | trip | 2024-05-01 10:00 | 2024-05-02 10:00".
func (t *Task) Record() string {
	switch t.Kind {
	case KindDeadline:
		return fmt.Sprintf("D | %s | %s | %s", t.Status, t.Description, t.Due.Format(DateTimeLayout))
	case KindEvent:
		return fmt.Sprintf("E | %s | %s | %s | %s", t.Status, t.Description,
			t.Start.Format(DateTimeLayout), t.End.Format(DateTimeLayout))
	default:
		return fmt.Sprintf("T | %s | %s", t.Status, t.Description)
	}
}

// ParseDateTime parses a date-time in the fixed layout. Any deviation from
// "YYYY-MM-DD HH:mm" is an error.
func ParseDateTime(s string) (time.Time, error) {
	ts, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date-time %q: %w", s, err)
	}
	return ts, nil
}

// ParseRecord decodes one pipe-delimited data-file line back into a task.
// Descriptions containing the separator are tolerated for todos and
// deadlines by rejoining the middle fields.
func ParseRecord(line string) (Task, error) {
	parts := strings.Split(line, " | ")
	if len(parts) < 3 {
		return Task{}, fmt.Errorf("record %q: too few fields", line)
	}

	kind := Kind(parts[0])
	status := Status(parts[1])

	switch kind {
	case KindTodo:
		desc := strings.Join(parts[2:], " | ")
		return New(kind, status, desc, time.Time{}, time.Time{}, time.Time{})
	case KindDeadline:
		if len(parts) < 4 {
			return Task{}, fmt.Errorf("record %q: deadline needs a due date", line)
		}
		due, err := ParseDateTime(parts[len(parts)-1])
		if err != nil {
			return Task{}, fmt.Errorf("record %q: %w", line, err)
		}
		desc := strings.Join(parts[2:len(parts)-1], " | ")
		return New(kind, status, desc, due, time.Time{}, time.Time{})
	case KindEvent:
		if len(parts) < 5 {
			return Task{}, fmt.Errorf("record %q: event needs start and end dates", line)
		}
		start, err := ParseDateTime(parts[len(parts)-2])
		if err != nil {
			return Task{}, fmt.Errorf("record %q: %w", line, err)
		}
		end, err := ParseDateTime(parts[len(parts)-1])
		if err != nil {
			return Task{}, fmt.Errorf("record %q: %w", line, err)
		}
		desc := strings.Join(parts[2:len(parts)-2], " | ")
		return New(kind, status, desc, time.Time{}, start, end)
	default:
		return Task{}, fmt.Errorf("record %q: unknown kind %q", line, parts[0])
	}
}
