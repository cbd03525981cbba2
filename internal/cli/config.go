package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/hbnb/internal/paths"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyFileName = "file_name"
	cfgKeyLogLevel = "log_level"

	defaultLogLevel = "warn"
)

// settings is the fully resolved runtime configuration.
type settings struct {
	configDir string
	store     types.Config
	logLevel  string
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults and environment variables still
// apply. data_dir has no environment binding here: HBNB_DATA_DIR is
// handled by paths.ResolveDataDir below the config file value.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendJSON)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	for key, env := range map[string]string{
		cfgKeyBackend:  "HBNB_BACKEND",
		cfgKeyFileName: "HBNB_FILE_NAME",
		cfgKeyLogLevel: "HBNB_LOG_LEVEL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadSettings resolves configuration from, in increasing priority: built-in
// defaults, a .env file in the working directory, config.yaml, the process
// environment and command-line flags.
func loadSettings(flags *rootFlags) (settings, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return settings{}, err
	}
	if flags.backend != "" {
		v.Set(cfgKeyBackend, flags.backend)
	}
	if flags.logLevel != "" {
		v.Set(cfgKeyLogLevel, flags.logLevel)
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	s := settings{
		configDir: configDir,
		store: types.Config{
			Backend:  v.GetString(cfgKeyBackend),
			DataDir:  dataDir,
			FileName: v.GetString(cfgKeyFileName),
		},
		logLevel: v.GetString(cfgKeyLogLevel),
	}
	if err := s.store.Validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

// configPath returns the location of config.yaml inside configDir.
func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}
