// Package session wires the task list, storage, and parser into one
// interactive session.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/taskline/taskline/internal/config"
	"github.com/taskline/taskline/internal/parser"
	"github.com/taskline/taskline/internal/storage"
	"github.com/taskline/taskline/internal/task"
	"github.com/taskline/taskline/internal/ui"
)

// Session owns the in-memory task list for its lifetime. One command is
// fully parsed, validated, and applied before the next is read.
type Session struct {
	cfg    *config.Config
	list   *task.List
	store  storage.Store
	parser *parser.Parser
	ui     *ui.UI
	log    *log.Logger
}

// New opens the configured store, loads the task list, and wires up the
// interpreter. A missing or corrupt backing medium starts an empty list and
// logs a warning instead of failing.
func New(cfg *config.Config, logger *log.Logger) (*Session, error) {
	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	tasks, err := store.Load()
	if err != nil {
		logger.Warn("could not load saved tasks, starting empty", "err", err)
		tasks = nil
	}

	list := task.NewList(tasks)
	u := ui.New()
	return &Session{
		cfg:    cfg,
		list:   list,
		store:  store,
		parser: parser.New(list, store, u, logger),
		ui:     u,
		log:    logger,
	}, nil
}

// List returns the session's task list.
func (s *Session) List() *task.List {
	return s.list
}

// Store returns the session's store.
func (s *Session) Store() storage.Store {
	return s.store
}

// UI returns the session's presentation helper.
func (s *Session) UI() *ui.UI {
	return s.ui
}

// Interpret runs one command line and returns the response text.
func (s *Session) Interpret(input string) string {
	return s.parser.Interpret(input)
}

// IsBye reports whether the input line is the exit command.
func IsBye(input string) bool {
	tokens := strings.Split(strings.TrimRight(input, " "), " ")
	return len(tokens) > 0 && tokens[0] == "bye"
}

// Run reads command lines from r and writes one response block per line to
// w until the exit command or end of input. Cancellation is observed only
// between commands.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	fmt.Fprintln(w, s.ui.Greeting())

	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		fmt.Fprintln(w, s.Interpret(line))
		if IsBye(line) {
			return nil
		}
	}
}

// Close releases the store.
func (s *Session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
