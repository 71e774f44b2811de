package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/checklist/internal/checklist"
	"github.com/idilsaglam/checklist/internal/config"
	"github.com/idilsaglam/checklist/internal/logging"
	"github.com/idilsaglam/checklist/internal/store"
	"github.com/idilsaglam/checklist/internal/store/jsonstore"
	"github.com/idilsaglam/checklist/internal/store/sqlitestore"
	"github.com/idilsaglam/checklist/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks bad invocations; an empty msg means help was already
// printed.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return usageError{msg: fmt.Sprintf(format, a...)}
}

// app carries what one invocation needs. The session is opened lazily
// so help and usage errors never touch storage.
type app struct {
	out, errOut io.Writer

	dir, cfgPath string
	backend      string
	path         string
	theme        string
	logLevel     string

	cfg     config.Config
	log     *zap.Logger
	closeFn func() error
	sess    *checklist.Session

	// prompt asks for a new item label when `add` gets no arguments.
	prompt func() (string, error)
}

// Execute runs the CLI against the process arguments and returns the
// exit code.
func Execute() int {
	return run(&app{out: os.Stdout, errOut: os.Stderr, prompt: promptLabel}, os.Args[1:])
}

func run(a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.Execute()
	a.close()
	if err == nil {
		return exitOK
	}
	var ue usageError
	if errors.As(err, &ue) {
		if ue.msg != "" {
			ui.Fail(a.errOut, ue.msg)
		}
		return exitUsage
	}
	ui.Fail(a.errOut, err.Error())
	return exitError
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "checklist",
		Short: "Roster checklist: 30 rows, any number of tracked items",
		Long: `checklist - track attendance, homework, supplies and any other item
for a fixed roster of 30. Every change is saved immediately.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usageError{}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.dir, "dir", "", "project directory (default: current directory)")
	pf.StringVar(&a.cfgPath, "config", "", "config file (default: <dir>/.checklist/config.yaml)")
	pf.StringVar(&a.backend, "store", "", "storage backend: json, sqlite or memory")
	pf.StringVar(&a.path, "path", "", "storage file path")
	pf.StringVar(&a.theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error or off")

	root.AddGroup(
		&cobra.Group{ID: "grid", Title: "Grid Commands:"},
		&cobra.Group{ID: "items", Title: "Item Commands:"},
	)
	root.SetHelpCommandGroupID("grid")
	root.SetCompletionCommandGroupID("items")

	root.AddCommand(
		newShowCmd(a),
		newSummaryCmd(a),
		newSetCmd(a),
		newToggleCmd(a),
		newBulkCmd(a),
		newTUICmd(a),
		newItemsCmd(a),
		newAddCmd(a),
		newRmCmd(a),
	)
	return root
}

// session loads config, logger and storage on first use.
func (a *app) session() (*checklist.Session, error) {
	if a.sess != nil {
		return a.sess, nil
	}
	dir := a.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	cfgPath := a.cfgPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath(dir)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if a.backend != "" {
		cfg.Storage.Backend = a.backend
	}
	if a.path != "" {
		cfg.Storage.Path = a.path
	}
	if a.theme != "" {
		cfg.UI.Theme = a.theme
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, usagef("%v", err)
	}
	a.cfg = cfg

	ui.SetColorMode(cfg.UI.Color)
	ui.SetTheme(cfg.UI.Theme)

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, usagef("%v", err)
	}
	a.log = log

	slot, err := a.openSlot(cfg, dir)
	if err != nil {
		return nil, err
	}
	adapter := store.NewAdapter(slot, log)
	a.sess = checklist.New(adapter.Load(),
		checklist.WithPersister(adapter),
		checklist.WithLogger(log),
	)
	return a.sess, nil
}

func (a *app) openSlot(cfg config.Config, dir string) (store.Slot, error) {
	path := cfg.DataPath(dir)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, err
		}
		a.closeFn = s.Close
		return s, nil
	case config.BackendMemory:
		return &store.MemorySlot{}, nil
	default:
		return jsonstore.New(path), nil
	}
}

func (a *app) close() {
	if a.closeFn != nil {
		if err := a.closeFn(); err != nil && a.log != nil {
			a.log.Warn("close storage", zap.Error(err))
		}
		a.closeFn = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
