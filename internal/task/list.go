package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIndexOutOfRange is returned by list mutations given an index that does
// not address a task.
var ErrIndexOutOfRange = errors.New("task index out of range")

// List is the ordered, mutable task container owned by a session. Indices
// are 0-based here; user-facing numbering is 1-based and produced by the
// rendering helpers.
type List struct {
	tasks []Task
}

// NewList creates a list seeded with the given tasks.
func NewList(tasks []Task) *List {
	return &List{tasks: append([]Task(nil), tasks...)}
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the current tasks in order.
func (l *List) Tasks() []Task {
	return append([]Task(nil), l.tasks...)
}

// IsValidID reports whether the 0-based index addresses a task.
func (l *List) IsValidID(i int) bool {
	return i >= 0 && i < len(l.tasks)
}

func (l *List) countLine() string {
	if len(l.tasks) == 1 {
		return "There is now 1 task in the list."
	}
	return fmt.Sprintf("There are now %d tasks in the list.", len(l.tasks))
}

// Add appends a task and returns the confirmation text.
func (l *List) Add(t Task) string {
	l.tasks = append(l.tasks, t)
	return fmt.Sprintf("Got it, I added:\n  %s\n%s", t.Render(), l.countLine())
}

// Delete removes the task at the 0-based index, shifting later tasks down.
func (l *List) Delete(i int) (string, error) {
	if !l.IsValidID(i) {
		return "", ErrIndexOutOfRange
	}
	removed := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return fmt.Sprintf("Okay, I removed:\n  %s\n%s", removed.Render(), l.countLine()), nil
}

// Mark sets the task at the 0-based index to done.
func (l *List) Mark(i int) (string, error) {
	if !l.IsValidID(i) {
		return "", ErrIndexOutOfRange
	}
	l.tasks[i].Mark()
	return fmt.Sprintf("Nice, marked as done:\n  %s", l.tasks[i].Render()), nil
}

// Unmark sets the task at the 0-based index back to not done. Unmarking an
// already not-done task is a no-op that still confirms.
func (l *List) Unmark(i int) (string, error) {
	if !l.IsValidID(i) {
		return "", ErrIndexOutOfRange
	}
	l.tasks[i].Unmark()
	return fmt.Sprintf("Okay, marked as not done:\n  %s", l.tasks[i].Render()), nil
}

// FindMatches returns the tasks whose description contains keyword as a
// case-sensitive substring, preserving list order. The result may be empty.
func (l *List) FindMatches(keyword string) []Task {
	var matches []Task
	for _, t := range l.tasks {
		if strings.Contains(t.Description, keyword) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Replace swaps the list contents for the given tasks.
func (l *List) Replace(tasks []Task) {
	l.tasks = append([]Task(nil), tasks...)
}

// ListAll renders the full 1-based numbered listing.
func (l *List) ListAll() string {
	if len(l.tasks) == 0 {
		return "There is nothing in the list yet."
	}
	return "Here is everything in the list:\n" + Render(l.tasks)
}

// Render renders tasks as 1-based numbered lines joined with newlines.
func Render(tasks []Task) string {
	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, t.Render()))
	}
	return strings.Join(lines, "\n")
}
