// Package cli wires the tareas commands. Running tareas with no subcommand
// opens the terminal UI; the subcommands operate on the same session
// headlessly.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tareas/internal/app"
	"tareas/internal/config"
	"tareas/internal/exitcode"
	"tareas/internal/storage"
	"tareas/internal/task"
	"tareas/internal/ui"
)

// Env holds the process dependencies a command run needs. Zero fields fall
// back to the real implementations.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
	RunTUI func(*app.Session, config.Config) error
}

// runtime is the state opened for one command invocation.
type runtime struct {
	env        Env
	configPath string
	cfg        config.Config
	db         *storage.SQLite
	logFile    *os.File
	session    *app.Session
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, env Env) (code int) {
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	if env.Stderr == nil {
		env.Stderr = os.Stderr
	}
	root, rt := newRootCmd(env)
	defer func() { code = rt.shutdown(env.Stderr, code) }()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCode(err)
	}
	return exitcode.Success
}

func newRootCmd(env Env) (*cobra.Command, *runtime) {
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.RunTUI == nil {
		env.RunTUI = ui.Run
	}
	rt := &runtime{env: env}

	root := &cobra.Command{
		Use:           "tareas",
		Short:         "A personal task tracker",
		Long:          "tareas keeps a single list of tasks, split into in-progress and completed.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.env.RunTUI(rt.session, rt.cfg)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "path to config.toml (default $XDG_CONFIG_HOME/tareas/config.toml)")

	root.AddCommand(
		newAddCmd(rt),
		newListCmd(rt),
		newEditCmd(rt),
		newDoneCmd(rt),
		newRmCmd(rt),
		newRemindCmd(rt),
		newNameCmd(rt),
		newExportCmd(rt),
	)
	return root, rt
}

type storageError struct {
	err error
}

func (e *storageError) Error() string { return e.err.Error() }
func (e *storageError) Unwrap() error { return e.err }

func (rt *runtime) open() error {
	path := rt.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return &storageError{fmt.Errorf("failed to load config: %w", err)}
	}
	rt.cfg = cfg

	logger := log.New(io.Discard, "", 0)
	if cfg.DebugLog != "" {
		f, err := os.OpenFile(cfg.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return &storageError{fmt.Errorf("failed to open debug log: %w", err)}
		}
		rt.logFile = f
		logger = log.New(f, "tareas ", log.LstdFlags)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		rt.close()
		return &storageError{fmt.Errorf("failed to open database: %w", err)}
	}
	rt.db = db

	filter, err := task.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		logger.Printf("config: %v; using all", err)
	}
	rt.session = app.NewSession(storage.NewAdapter(db, logger),
		app.WithClock(rt.env.Now),
		app.WithFilter(filter),
	)
	return nil
}

func (rt *runtime) close() error {
	var errs []error
	if rt.db != nil {
		errs = append(errs, rt.db.Close())
		rt.db = nil
	}
	if rt.logFile != nil {
		errs = append(errs, rt.logFile.Close())
		rt.logFile = nil
	}
	return errors.Join(errs...)
}

// shutdown closes rt and reports a close failure on w. A run that had
// succeeded then exits with a storage error.
func (rt *runtime) shutdown(w io.Writer, code int) int {
	if err := rt.close(); err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		if code == exitcode.Success {
			return exitcode.StorageError
		}
	}
	return code
}

func exitCode(err error) int {
	var se *storageError
	if errors.As(err, &se) {
		return exitcode.StorageError
	}
	return exitcode.UserError
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
