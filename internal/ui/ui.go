// Package ui renders the fixed user-facing text and the optional terminal
// interface.
package ui

// UI produces the presentation text around command responses. All methods
// are pure formatting with no side effects on task state.
type UI struct{}

// New creates a UI.
func New() *UI {
	return &UI{}
}

// Greeting returns the session opening text.
func (u *UI) Greeting() string {
	return "Hello! This is taskline. What can I do for you?"
}

// Farewell returns the session closing text.
func (u *UI) Farewell() string {
	return "Bye! Your tasks are saved for next time."
}

// InvalidDateFormat returns the soft notice for an unparsable date-time.
func (u *UI) InvalidDateFormat() string {
	return "I could not read that date. Dates look like 2024-03-01 23:59 (yyyy-mm-dd hh:mm)."
}

// Matches wraps a rendered listing of find results.
func (u *UI) Matches(listing string) string {
	if listing == "" {
		return "Nothing in the list matches that keyword."
	}
	return "Here is everything that matches:\n" + listing
}
