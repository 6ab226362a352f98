// Package parser interprets user command lines and applies them to the
// task list.
package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/taskline/taskline/internal/task"
	"github.com/taskline/taskline/internal/ui"
)

// Saver receives the full list state after every successful mutation.
type Saver interface {
	Save(tasks []task.Task) error
}

// Parser dispatches command lines to their handlers. It never returns an
// error to its caller; every recognized failure is converted to its message
// text inside Interpret.
type Parser struct {
	list  *task.List
	store Saver
	ui    *ui.UI
	log   *log.Logger
}

// New creates a parser over the given list. store may be nil when no
// persistence is wanted (one-shot interpretation, tests).
func New(list *task.List, store Saver, u *ui.UI, logger *log.Logger) *Parser {
	return &Parser{list: list, store: store, ui: u, log: logger}
}

// Interpret parses one input line and returns the response text. Validation
// failures come back as their fixed message; nothing is mutated before a
// command validates.
func (p *Parser) Interpret(input string) string {
	out, err := p.dispatch(input)
	if err != nil {
		if errors.Is(err, task.ErrIndexOutOfRange) {
			return ErrInvalidTaskID.Error()
		}
		return err.Error()
	}
	return out
}

func (p *Parser) dispatch(input string) (string, error) {
	tokens := splitTokens(input)
	command := ""
	if len(tokens) > 0 {
		command = tokens[0]
	}

	switch command {
	case "list":
		return p.list.ListAll(), nil
	case "delete":
		return p.parseDelete(input)
	case "mark":
		return p.parseMark(input)
	case "unmark":
		return p.parseUnmark(input)
	case "todo":
		return p.parseTodo(input)
	case "deadline":
		return p.parseDeadline(input)
	case "event":
		return p.parseEvent(input)
	case "find":
		return p.parseFind(input)
	case "bye":
		return p.ui.Farewell(), nil
	default:
		return "", ErrInvalidCommand
	}
}

// isNumber reports whether s is non-empty and consists only of digits and
// dots. Deliberately permissive: "1.2.3" passes and is rejected later by the
// integer conversion.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if (s[i] < '0' || s[i] > '9') && s[i] != '.' {
			return false
		}
	}
	return true
}

// splitTokens splits on single spaces and drops trailing empty tokens, so a
// line ending in spaces parses the same as one without them.
func splitTokens(s string) []string {
	parts := strings.Split(s, " ")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func (p *Parser) parseDelete(input string) (string, error) {
	tokens := splitTokens(input)
	if len(tokens) == 1 {
		return "", ErrNoTaskID
	}
	id := tokens[1]
	if !isNumber(id) {
		return "", ErrInvalidTaskID
	}
	index, err := strconv.Atoi(id)
	if err != nil {
		return "", ErrInvalidTaskID
	}
	out, err := p.list.Delete(index - 1)
	if err != nil {
		return "", err
	}
	p.persist()
	return out, nil
}

func (p *Parser) parseMark(input string) (string, error) {
	index, err := p.parseTaskID(input)
	if err != nil {
		return "", err
	}
	out, err := p.list.Mark(index)
	if err != nil {
		return "", err
	}
	p.persist()
	return out, nil
}

func (p *Parser) parseUnmark(input string) (string, error) {
	index, err := p.parseTaskID(input)
	if err != nil {
		return "", err
	}
	out, err := p.list.Unmark(index)
	if err != nil {
		return "", err
	}
	p.persist()
	return out, nil
}

// parseTaskID extracts and bounds-checks the id argument of mark/unmark.
// The id is everything after the first space, so "mark 1 2" is invalid
// rather than a mark of task 1.
func (p *Parser) parseTaskID(input string) (int, error) {
	parts := strings.SplitN(input, " ", 2)
	if len(parts) == 1 {
		return 0, ErrNoTaskID
	}
	id := parts[1]
	index, err := strconv.Atoi(id)
	if !isNumber(id) || err != nil || !p.list.IsValidID(index-1) {
		return 0, ErrInvalidTaskID
	}
	return index - 1, nil
}

func (p *Parser) parseTodo(input string) (string, error) {
	parts := strings.SplitN(input, " ", 2)
	if len(parts) == 1 {
		return "", ErrNoDesc
	}
	if strings.TrimSpace(parts[1]) == "" {
		return "", ErrNoDesc
	}
	out := p.list.Add(task.NewTodo(parts[1]))
	p.persist()
	return out, nil
}

func (p *Parser) parseDeadline(input string) (string, error) {
	parts := strings.SplitN(input, " ", 2)
	if len(parts) == 1 {
		return "", ErrNoDesc
	}

	details := strings.SplitN(parts[1], " /by ", 2)
	if len(details) < 2 {
		return "", ErrInvalidDeadline
	}

	desc := details[0]
	if strings.TrimSpace(desc) == "" {
		return "", ErrNoDesc
	}
	due, err := task.ParseDateTime(details[1])
	if err != nil {
		return p.ui.InvalidDateFormat(), nil
	}

	out := p.list.Add(task.NewDeadline(desc, due))
	p.persist()
	return out, nil
}

func (p *Parser) parseEvent(input string) (string, error) {
	parts := strings.SplitN(input, " ", 2)
	if len(parts) == 1 {
		return "", ErrNoDesc
	}
	if strings.TrimSpace(parts[1]) == "" {
		return "", ErrNoDesc
	}

	details := strings.SplitN(parts[1], "/from", 2)
	if strings.TrimSpace(details[0]) == "" {
		return "", ErrNoDesc
	}
	if len(details) == 1 {
		return "", ErrInvalidEvent
	}

	desc := strings.TrimSpace(details[0])
	dates := splitOnSeparator(details[1], "/to")
	start := strings.TrimSpace(dates[0])
	if start == "" {
		return "", ErrNoStart
	}
	if len(dates) == 1 {
		return "", ErrNoEnd
	}
	end := strings.TrimSpace(dates[1])
	if end == "" {
		return "", ErrNoEnd
	}

	startTime, err := task.ParseDateTime(start)
	if err != nil {
		return p.ui.InvalidDateFormat(), nil
	}
	endTime, err := task.ParseDateTime(end)
	if err != nil {
		return p.ui.InvalidDateFormat(), nil
	}

	ev, err := task.NewEvent(desc, startTime, endTime)
	if err != nil {
		return "", err
	}

	out := p.list.Add(ev)
	p.persist()
	return out, nil
}

// splitOnSeparator splits on every occurrence of sep and drops trailing
// empty parts, so a line ending in the separator reads as one missing field.
func splitOnSeparator(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func (p *Parser) parseFind(input string) (string, error) {
	tokens := splitTokens(input)
	if len(tokens) != 2 {
		return "", ErrInvalidFindTask
	}
	matches := p.list.FindMatches(tokens[1])
	return p.ui.Matches(task.Render(matches)), nil
}

// persist flushes the full list state after a successful mutation. A write
// failure is logged; the in-memory mutation stands.
func (p *Parser) persist() {
	if p.store == nil {
		return
	}
	if err := p.store.Save(p.list.Tasks()); err != nil {
		if p.log != nil {
			p.log.Warn("persisting task list failed", "err", err)
		}
	}
}
