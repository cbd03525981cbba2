// Package storage holds the live set of entities and persists it through an
// Engine. The in-memory map is the single source of truth while the process
// runs; every Save rewrites the whole persisted document.
package storage

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Document is the persisted form of a store: composite key to flat
// attribute dictionary.
type Document map[string]map[string]any

// Engine reads and writes the persisted document.
type Engine interface {
	// Read returns the persisted document. A store that was never written
	// reads as an empty document, not an error.
	Read() (Document, error)

	// Write replaces the persisted document. A failed Write leaves the
	// previous document intact.
	Write(doc Document) error

	// Close releases engine resources.
	Close() error
}

// Store maps composite keys ("Kind.id") to entities.
type Store struct {
	objects map[string]types.Entity
	engine  Engine
	logger  *zap.SugaredLogger
}

// NewStore creates an empty store on top of engine. Call Reload to populate
// it from durable storage.
func NewStore(engine Engine, logger *zap.SugaredLogger) *Store {
	return &Store{
		objects: make(map[string]types.Entity),
		engine:  engine,
		logger:  logger,
	}
}

// Open validates cfg, creates the data directory, selects the engine for
// cfg.Backend and reloads the persisted document.
func Open(cfg types.Config, logger *zap.SugaredLogger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	var engine Engine
	switch cfg.Backend {
	case types.BackendSQLite:
		e, err := NewSQLiteEngine(cfg.Path())
		if err != nil {
			return nil, err
		}
		engine = e
	default:
		engine = NewJSONEngine(cfg.Path())
	}

	s := NewStore(engine, logger)
	if err := s.Reload(); err != nil {
		engine.Close()
		return nil, fmt.Errorf("reload %s: %w", cfg.Path(), err)
	}
	s.logger.Debugw("store opened", "backend", cfg.Backend, "path", cfg.Path(), "objects", len(s.objects))
	return s, nil
}

// All returns the live map of entities. Callers may delete entries and then
// call Save.
func (s *Store) All() map[string]types.Entity {
	return s.objects
}

// New registers e under its composite key.
func (s *Store) New(e types.Entity) {
	s.objects[types.Key(e)] = e
}

// Get returns the entity with the given kind and id.
// Returns ErrUnknownKind for unrecognized kinds and ErrNotFound when the
// composite key is absent.
func (s *Store) Get(kind, id string) (types.Entity, error) {
	if !types.IsKind(kind) {
		return nil, types.ErrUnknownKind
	}
	e, ok := s.objects[types.CompositeKey(kind, id)]
	if !ok {
		return nil, types.ErrNotFound
	}
	return e, nil
}

// Delete removes the entity with the given kind and id. It does not save.
func (s *Store) Delete(kind, id string) error {
	e, err := s.Get(kind, id)
	if err != nil {
		return err
	}
	delete(s.objects, types.Key(e))
	return nil
}

// Filter returns the entities of kind, or every entity when kind is empty,
// ordered by creation time and then by composite key.
func (s *Store) Filter(kind string) []types.Entity {
	var out []types.Entity
	for _, e := range s.objects {
		if kind == "" || e.Kind() == kind {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Base(), out[j].Base()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return types.Key(out[i]) < types.Key(out[j])
	})
	return out
}

// Count returns the number of live entities of kind.
func (s *Store) Count(kind string) int {
	n := 0
	for _, e := range s.objects {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

// Save writes the full current set through the engine.
func (s *Store) Save() error {
	doc := make(Document, len(s.objects))
	for key, e := range s.objects {
		doc[key] = types.Flatten(e)
	}
	if err := s.engine.Write(doc); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.logger.Debugw("store saved", "objects", len(doc))
	return nil
}

// Reload replaces the in-memory set with the persisted document. Records
// that cannot be reconstructed are skipped and logged. On a read error the
// in-memory set is left unchanged.
func (s *Store) Reload() error {
	doc, err := s.engine.Read()
	if err != nil {
		return err
	}

	objects := make(map[string]types.Entity, len(doc))
	for key, attrs := range doc {
		kind, _ := attrs[types.AttrClass].(string)
		if kind == "" {
			kind, _, _ = strings.Cut(key, ".")
		}
		e, err := types.Reconstruct(kind, attrs)
		if err != nil {
			s.logger.Warnw("skipping malformed record", "key", key, "error", err)
			continue
		}
		if k := types.Key(e); k != key {
			s.logger.Warnw("record key does not match its kind and id", "key", key, "want", k)
			key = k
		}
		objects[key] = e
	}
	s.objects = objects
	s.logger.Debugw("store reloaded", "objects", len(objects))
	return nil
}

// Close releases the engine.
func (s *Store) Close() error {
	return s.engine.Close()
}
