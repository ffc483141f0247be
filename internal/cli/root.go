// Package cli implements the vibe command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/vibedocs/internal/console"
	"github.com/mesh-intelligence/vibedocs/internal/paths"
	"github.com/mesh-intelligence/vibedocs/internal/prompt"
	"github.com/mesh-intelligence/vibedocs/pkg/types"
	"github.com/mesh-intelligence/vibedocs/pkg/vibedocs"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and the I/O streams shared by every command.
type app struct {
	configDir string
	dbPath    string
	logLevel  string
	jsonMode  bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// prompter overrides the terminal prompter when set.
	prompter prompt.Prompter

	cfg    *viper.Viper
	logger *log.Logger
}

// newRootCmd creates the top-level "vibe" command with global flags and all
// subcommands registered.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "vibe",
		Short: "Scaffold and maintain project documentation",
		Long: "vibe creates a project directory from a documentation template, tracks its\n" +
			"sections and feature checklist in a local database, and keeps both in sync\n" +
			"through an interactive update session.",
		Version:       vibedocs.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database file (default: platform data dir/vibedocs.db)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format where supported")

	root.AddCommand(newVersionCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newTemplatesCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	a := &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	return run(a, os.Args[1:])
}

func run(a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(a.errOut, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup loads configuration and builds the logger before any subcommand runs.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.cfg = cfg

	level := a.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	logger, err := console.NewLogger(a.errOut, level)
	if err != nil {
		return userError(err)
	}
	a.logger = logger
	a.logger.Debug("loaded config", "dir", configDir)
	return nil
}

// exitError carries the exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// userErrors are failures caused by the user's input or the state they asked
// about, as opposed to the environment.
var userErrors = []error{
	types.ErrUnknownTemplate,
	types.ErrProjectExists,
	types.ErrNoProject,
	types.ErrSectionNotFound,
	types.ErrInvalidName,
	types.ErrInvalidSelection,
	types.ErrAborted,
	types.ErrNotFound,
	types.ErrLogLevelUnknown,
	errIssuesFound,
}

// classify wraps err with the exit code its cause implies.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// exitCode maps an error to a process exit code. Errors that carry no code,
// such as cobra's argument and flag errors, are user errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
