package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/console"
	"github.com/mesh-intelligence/hbnb/internal/storage"
)

func newConsoleCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the command interpreter (the default)",
		Long: "Read commands from standard input until quit or end of input.\n" +
			"Type \"help\" inside the console for the list of commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, flags)
		},
	}
}

func runConsole(cmd *cobra.Command, flags *rootFlags) error {
	s, err := loadSettings(flags)
	if err != nil {
		return err
	}
	logger, err := newLogger(s.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := storage.Open(s.store, logger)
	if err != nil {
		return systemErrorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warnw("closing store", "error", err)
		}
	}()

	in := cmd.InOrStdin()
	prompt := ""
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		prompt = console.DefaultPrompt
	}
	logger.Debugw("console started", "store", s.store.Path(), "interactive", prompt != "")

	if err := console.New(store, cmd.OutOrStdout(), logger).Run(in, prompt); err != nil {
		return systemErrorf("read input: %w", err)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
