// Package cli implements the hgraph command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/hgraph/internal/paths"
	"github.com/mesh-intelligence/hgraph/pkg/hgraph"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// ExitError carries a process exit code out of a command. Commands return
// it instead of calling os.Exit so they can be run from tests.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func userError(format string, args ...any) error {
	return &ExitError{Code: exitUserError, Err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &ExitError{Code: exitSysError, Err: fmt.Errorf(format, args...)}
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	schema    string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags  rootFlags
	cfg    *viper.Viper
	logger *slog.Logger
}

// NewRootCmd creates the top-level "hgraph" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:     "hgraph",
		Short:   "Typed graphs with declared relation constraints",
		Long:    "hgraph declares node, edge and hyperedge types with relational properties\nand checks records of those types against them.",
		Version: hgraph.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir/hgraph)")
	root.PersistentFlags().StringVar(&a.flags.schema, "schema", "", "schema file (default: <config-dir>/schema.yaml)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newTypesCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newExportCmd(a))

	return root
}

// setup resolves the config directory, loads config.yaml and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError("%w", err)
	}
	if a.flags.logLevel != "" {
		cfg.Set(cfgKeyLogLevel, a.flags.logLevel)
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return userError("%w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) configDir() string {
	return a.cfg.GetString(cfgKeyConfigDir)
}

// schemaPath resolves the schema document: --schema > config.yaml schema >
// HGRAPH_SCHEMA > <config-dir>/schema.yaml.
func (a *app) schemaPath() (string, error) {
	return paths.ResolveSchema(a.flags.schema, a.cfg.GetString(cfgKeySchema), a.configDir())
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code. Errors are
// printed to stderr.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		if ee.Err != nil {
			fmt.Fprintln(stderr, "hgraph:", ee.Err)
		}
		return ee.Code
	}
	fmt.Fprintln(stderr, "hgraph:", err)
	return exitUserError
}
