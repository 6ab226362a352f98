// Package cmd implements the CLI command structure for taskline.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taskline/taskline/internal/config"
	"github.com/taskline/taskline/internal/logging"
	"github.com/taskline/taskline/internal/session"
	"github.com/taskline/taskline/internal/task"
	"github.com/taskline/taskline/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskline CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskline", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand; no subcommand means an interactive session.
	subcommand := "repl"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "repl":
		return replCommand(ctx, cfg)
	case "tui":
		return tuiCommand(ctx, cfg)
	case "exec":
		return execCommand(cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "import":
		return importCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func newSession(cfg *config.Config) (*session.Session, error) {
	logger := logging.New(cfg)
	return session.New(cfg, logger)
}

// replCommand runs the plain line-at-a-time session on stdin/stdout.
func replCommand(ctx context.Context, cfg *config.Config) error {
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()
	return sess.Run(ctx, os.Stdin, os.Stdout)
}

// tuiCommand runs the full-screen session.
func tuiCommand(ctx context.Context, cfg *config.Config) error {
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()
	return ui.RunTUI(ctx, sess)
}

// execCommand interprets a single command line and prints the response.
// Command failures are responses, not process failures.
func execCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("exec needs a command line, e.g.: taskline exec todo read book")
	}
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()
	fmt.Println(sess.Interpret(strings.Join(args, " ")))
	return nil
}

// exportCommand writes a JSON snapshot of the current list.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskline export", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path := cfg.SnapshotFile
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	snap := task.NewSnapshot(sess.List().Tasks())
	if err := snap.Save(path); err != nil {
		return err
	}
	fmt.Printf("Exported %d task(s) to %s\n", len(snap.Tasks), path)
	return nil
}

// importCommand replaces the list contents from a JSON snapshot.
func importCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskline import", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path := cfg.SnapshotFile
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}

	snap, err := task.LoadSnapshot(path)
	if err != nil {
		return err
	}
	result := snap.Validate(task.ValidationOptions{SchemaPath: cfg.SchemaFile})
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "invalid snapshot: %v\n", e)
		}
		return fmt.Errorf("snapshot %s failed validation", path)
	}
	tasks, err := snap.Decode()
	if err != nil {
		return err
	}

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.List().Replace(tasks)
	if err := sess.Store().Save(sess.List().Tasks()); err != nil {
		return fmt.Errorf("persisting imported tasks: %w", err)
	}
	fmt.Printf("Imported %d task(s) from %s\n", len(tasks), path)
	return nil
}

// doctorCommand checks config, storage, and snapshot validity.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskline doctor", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Taskline Doctor")
	fmt.Println("===============")
	fmt.Println()

	allOK := true
	check := func(name string, err error) {
		if err != nil {
			allOK = false
			fmt.Printf("FAIL %s: %v\n", name, err)
			return
		}
		fmt.Printf("ok   %s\n", name)
	}

	fmt.Printf("storage backend: %s\n", cfg.Storage)
	if cfg.Storage == config.StorageSQLite {
		fmt.Printf("db file: %s\n", cfg.DBFile)
	} else {
		fmt.Printf("data file: %s\n", cfg.DataFile)
	}
	fmt.Println()

	sess, err := newSession(cfg)
	check("storage opens and loads", err)
	if err == nil {
		defer sess.Close()
		fmt.Printf("     %d task(s) loaded\n", sess.List().Len())

		snap := task.NewSnapshot(sess.List().Tasks())
		result := snap.Validate(task.ValidationOptions{SchemaPath: cfg.SchemaFile})
		for _, warning := range result.Warnings {
			fmt.Printf("     warning: %s\n", warning)
		}
		var verr error
		if !result.Valid {
			verr = fmt.Errorf("%d error(s)", len(result.Errors))
		}
		check("snapshot of current list validates", verr)
		if result.UsedSchema {
			fmt.Println("     validated against JSON Schema")
		}
	}

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println()
	fmt.Println("All good.")
	return nil
}

func versionCommand() error {
	fmt.Printf("taskline %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: taskline [flags] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  repl     Interactive session on stdin/stdout (default)")
	fmt.Fprintln(w, "  tui      Full-screen interactive session")
	fmt.Fprintln(w, "  exec     Run a single command line and print the response")
	fmt.Fprintln(w, "  export   Write a JSON snapshot of the task list")
	fmt.Fprintln(w, "  import   Replace the task list from a JSON snapshot")
	fmt.Fprintln(w, "  doctor   Check config, storage, and snapshot validity")
	fmt.Fprintln(w, "  version  Show version")
	fmt.Fprintln(w, "  help     Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
