package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/hbnb/internal/paths"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// isolate points every configuration source at fresh temp directories.
func isolate(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	configDir = t.TempDir()
	dataDir = t.TempDir()
	t.Setenv(paths.EnvConfigDir, configDir)
	t.Setenv(paths.EnvDataDir, dataDir)
	t.Setenv("HBNB_BACKEND", "")
	t.Setenv("HBNB_FILE_NAME", "")
	t.Setenv("HBNB_LOG_LEVEL", "")
	return configDir, dataDir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "hbnb v"+Version+"\nmodule: "+modulePath+"\n", out)
}

func TestRootRunsConsole(t *testing.T) {
	_, dataDir := isolate(t)

	out, err := run(t, "create State\ncount State\nquit\n")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[1])
	assert.FileExists(t, filepath.Join(dataDir, types.DefaultJSONFile))
}

func TestConsoleStatePersistsAcrossRuns(t *testing.T) {
	isolate(t)

	out, err := run(t, "create User\n", "console")
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	out, err = run(t, "show User "+id+"\n", "console")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[User] ("+id+")"), out)
}

func TestBackendFlag(t *testing.T) {
	_, dataDir := isolate(t)

	_, err := run(t, "create Amenity\n", "--backend", "sqlite")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dataDir, types.DefaultSQLiteFile))
	assert.NoFileExists(t, filepath.Join(dataDir, types.DefaultJSONFile))

	out, err := run(t, "count Amenity\n", "--backend", "sqlite")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestUnknownBackendIsRejected(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "--backend", "redis")
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestInvalidLogLevelIsRejected(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "--log-level", "chatty")
	assert.ErrorContains(t, err, "log level")
}

func TestInitWritesConfigAndStore(t *testing.T) {
	configDir, _ := isolate(t)
	dataDir := filepath.Join(t.TempDir(), "store")

	out, err := run(t, "", "init", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dataDir, types.DefaultJSONFile))

	data, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	require.NoError(t, err)
	var cfg types.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.BackendJSON, cfg.Backend)
	assert.Equal(t, dataDir, cfg.DataDir)

	stored, err := os.ReadFile(filepath.Join(dataDir, types.DefaultJSONFile))
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(stored))
}

func TestInitKeepsExistingConfig(t *testing.T) {
	configDir, _ := isolate(t)
	path := filepath.Join(configDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: sqlite\n"), 0o644))

	_, err := run(t, "", "init")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "backend: sqlite\n", string(data))
}

func TestLoadSettingsPrecedence(t *testing.T) {
	configDir, envDataDir := isolate(t)
	cfgDataDir := t.TempDir()
	yamlText := "backend: sqlite\ndata_dir: " + cfgDataDir + "\nfile_name: places.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(yamlText), 0o644))

	t.Run("config file over env data dir", func(t *testing.T) {
		s, err := loadSettings(&rootFlags{})
		require.NoError(t, err)
		assert.Equal(t, types.BackendSQLite, s.store.Backend)
		assert.Equal(t, cfgDataDir, s.store.DataDir)
		assert.Equal(t, "places.db", s.store.FileName)
		assert.Equal(t, defaultLogLevel, s.logLevel)
		assert.NotEqual(t, envDataDir, s.store.DataDir)
	})

	t.Run("env over config file", func(t *testing.T) {
		t.Setenv("HBNB_BACKEND", "json")
		t.Setenv("HBNB_LOG_LEVEL", "debug")
		s, err := loadSettings(&rootFlags{})
		require.NoError(t, err)
		assert.Equal(t, types.BackendJSON, s.store.Backend)
		assert.Equal(t, "debug", s.logLevel)
	})

	t.Run("flags over everything", func(t *testing.T) {
		t.Setenv("HBNB_BACKEND", "json")
		flagDir := t.TempDir()
		s, err := loadSettings(&rootFlags{backend: "sqlite", dataDir: flagDir, logLevel: "error"})
		require.NoError(t, err)
		assert.Equal(t, types.BackendSQLite, s.store.Backend)
		assert.Equal(t, flagDir, s.store.DataDir)
		assert.Equal(t, "error", s.logLevel)
	})
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: [unclosed\n"), 0o644))

	_, err := loadConfig(dir)
	assert.ErrorContains(t, err, "read config")
}
