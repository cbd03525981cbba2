package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long: "Create the configuration directory and config.yaml if missing, then\n" +
			"create the data directory and write the store file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	s, err := loadSettings(flags)
	if err != nil {
		return err
	}
	logger, err := newLogger(s.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return systemErrorf("create config directory: %w", err)
	}
	if err := writeConfigIfMissing(configPath(s.configDir), s.store); err != nil {
		return systemErrorf("write config: %w", err)
	}

	store, err := storage.Open(s.store, logger)
	if err != nil {
		return systemErrorf("initialize storage: %w", err)
	}
	defer store.Close()
	if err := store.Save(); err != nil {
		return systemErrorf("initialize storage: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "hbnb initialized: %s\n", s.store.Path())
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. An existing file is left untouched.
func writeConfigIfMissing(path string, cfg types.Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# hbnb configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
