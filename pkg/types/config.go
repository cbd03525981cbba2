package types

import (
	"errors"
	"path/filepath"
)

// Config selects the storage engine and the location of the persisted store.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	FileName string `json:"file_name" yaml:"file_name"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default store file names per backend.
const (
	DefaultJSONFile   = "file.json"
	DefaultSQLiteFile = "file.db"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]string{
	BackendJSON:   DefaultJSONFile,
	BackendSQLite: DefaultSQLiteFile,
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if _, ok := knownBackends[c.Backend]; !ok {
		return ErrBackendUnknown
	}
	return nil
}

// Path returns the location of the store file. An empty DataDir means the
// current directory; an empty FileName falls back to the backend default.
func (c Config) Path() string {
	dir := c.DataDir
	if dir == "" {
		dir = "."
	}
	name := c.FileName
	if name == "" {
		name = knownBackends[c.Backend]
	}
	return filepath.Join(dir, name)
}
