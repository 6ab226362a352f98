package parser

import "errors"

// Command failures surfaced to the user. Each sentinel's text is the exact
// message returned for that failure; Interpret collapses them to strings at
// the dispatch boundary.
var (
	ErrInvalidCommand  = errors.New("I don't know that command. Try: list, todo, deadline, event, mark, unmark, delete, find, bye.")
	ErrNoDesc          = errors.New("The task needs a description.")
	ErrNoTaskID        = errors.New("That command needs a task number.")
	ErrInvalidTaskID   = errors.New("That is not a valid task number.")
	ErrInvalidDeadline = errors.New("A deadline looks like: deadline <description> /by <date>.")
	ErrInvalidEvent    = errors.New("An event looks like: event <description> /from <start> /to <end>.")
	ErrNoStart         = errors.New("The event needs a start time after /from.")
	ErrNoEnd           = errors.New("The event needs an end time after /to.")
	ErrInvalidFindTask = errors.New("Find takes exactly one keyword.")
)
