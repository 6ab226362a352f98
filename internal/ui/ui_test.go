package ui

import (
	"strings"
	"testing"
)

func TestMatches(t *testing.T) {
	u := New()

	if got := u.Matches(""); got != "Nothing in the list matches that keyword." {
		t.Errorf("empty listing: %q", got)
	}

	got := u.Matches("1. [T][ ] read book")
	if !strings.HasPrefix(got, "Here is everything that matches:\n") {
		t.Errorf("match header: %q", got)
	}
	if !strings.Contains(got, "1. [T][ ] read book") {
		t.Errorf("listing missing: %q", got)
	}
}

func TestFixedText(t *testing.T) {
	u := New()
	if u.Greeting() == "" || u.Farewell() == "" || u.InvalidDateFormat() == "" {
		t.Error("fixed text must not be empty")
	}
	if !strings.Contains(u.InvalidDateFormat(), "2024-03-01 23:59") {
		t.Errorf("date notice should show the expected format: %q", u.InvalidDateFormat())
	}
}
