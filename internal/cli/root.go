// Package cli implements the hbnb command-line interface. Running hbnb with
// no subcommand starts the interactive console.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
}

// NewRootCmd creates the top-level "hbnb" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "hbnb",
		Short: "Command interpreter for the HBNB object store",
		Long: "hbnb reads commands such as \"create User\" or \"User.all()\" one line at a\n" +
			"time and applies them to a store persisted in the data directory.",
		Args: cobra.NoArgs,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/hbnb)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory holding the store file (default: working directory)")
	pf.StringVar(&flags.backend, "backend", "", "storage backend: json or sqlite (default: json)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level written to stderr (default: warn)")

	root.AddCommand(newConsoleCmd(flags))
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		var se sysError
		if errors.As(err, &se) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}

// sysError marks failures of the environment rather than of user input.
type sysError struct{ err error }

func (e sysError) Error() string { return e.err.Error() }
func (e sysError) Unwrap() error { return e.err }

func systemErrorf(format string, args ...any) error {
	return sysError{fmt.Errorf(format, args...)}
}
