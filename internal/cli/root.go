// Package cli implements the addressbook command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/addressbook/internal/logging"
	"github.com/mesh-intelligence/addressbook/internal/paths"
	"github.com/mesh-intelligence/addressbook/pkg/addressbook"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by the commands of one root command instance.
// PersistentPreRunE fills cfg and log before any subcommand runs.
type app struct {
	flags rootFlags
	cfg   *viper.Viper
	log   *slog.Logger
}

// NewRootCmd creates the top-level "addressbook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: logging.Discard()}

	root := &cobra.Command{
		Use:     "addressbook",
		Short:   "Manage a local contact directory",
		Long:    "addressbook stores named contacts, each with a set of 10-digit phone numbers,\nin a local data directory.",
		Version: addressbook.Version,
		// Errors are printed once by Execute.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newAddCmd())
	root.AddCommand(a.newShowCmd())
	root.AddCommand(a.newDeleteCmd())
	root.AddCommand(a.newPhoneCmd())
	root.AddCommand(a.newLookupCmd())

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "addressbook:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError("resolve config dir", err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return systemError("load config", err)
	}
	cfg.Set(cfgKeyConfigDir, configDir)
	a.cfg = cfg

	level := a.flags.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	log, err := logging.New(cmd.ErrOrStderr(), level, cfg.GetString(cfgKeyLogFormat))
	if err != nil {
		return err
	}
	a.log = log.With("cmd", cmd.Name())
	a.log.Debug("config loaded", "config_dir", configDir, "file", cfg.ConfigFileUsed())
	return nil
}

// sysError marks failures of the environment (disk, database) rather than of
// user input; they exit with exitSysError.
type sysError struct {
	op  string
	err error
}

func (e *sysError) Error() string { return e.op + ": " + e.err.Error() }

func (e *sysError) Unwrap() error { return e.err }

func systemError(op string, err error) error {
	return &sysError{op: op, err: err}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
