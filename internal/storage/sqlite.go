package storage

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteEngine persists the document as one row per composite key. Each
// Write replaces every row inside a single transaction.
type SQLiteEngine struct {
	db   *sql.DB
	path string
}

// NewSQLiteEngine opens (or creates) the database at path and applies the
// schema.
func NewSQLiteEngine(path string) (*SQLiteEngine, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteEngine{db: db, path: path}, nil
}

// Path returns the database file.
func (e *SQLiteEngine) Path() string { return e.path }

// Read loads every row. An empty table reads as an empty document.
func (e *SQLiteEngine) Read() (Document, error) {
	rows, err := e.db.Query(`SELECT key, payload FROM objects`)
	if err != nil {
		return nil, fmt.Errorf("select objects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	doc := Document{}
	for rows.Next() {
		var key, payload string
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var attrs map[string]any
		if err := decodeJSON([]byte(payload), &attrs); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		doc[key] = attrs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate objects: %w", err)
	}
	return doc, nil
}

// Write replaces the table contents with doc.
func (e *SQLiteEngine) Write(doc Document) (retErr error) {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.Exec(`DELETE FROM objects`); err != nil {
		return fmt.Errorf("clear objects: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO objects (key, kind, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for key, attrs := range doc {
		payload, err := json.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		kind, _ := attrs[types.AttrClass].(string)
		if _, err := stmt.Exec(key, kind, string(payload)); err != nil {
			return fmt.Errorf("insert %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close closes the database.
func (e *SQLiteEngine) Close() error {
	return e.db.Close()
}
