package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// JSONEngine persists the document as a single JSON object in one file.
type JSONEngine struct {
	path string
}

// NewJSONEngine returns an engine backed by the file at path. The file is not
// created until the first Write.
func NewJSONEngine(path string) *JSONEngine {
	return &JSONEngine{path: path}
}

// Path returns the backing file.
func (e *JSONEngine) Path() string { return e.path }

// Read decodes the file. A missing or empty file reads as an empty document.
func (e *JSONEngine) Read() (Document, error) {
	data, err := os.ReadFile(e.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", e.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil
	}

	var doc Document
	if err := decodeJSON(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", e.path, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Write encodes doc and atomically replaces the file.
func (e *JSONEngine) Write(doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return writeAtomic(e.path, data)
}

// Close is a no-op; the file is only open during Read and Write.
func (e *JSONEngine) Close() error { return nil }

// decodeJSON keeps numbers as json.Number so integers are not widened to
// float64 on the way through.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// writeAtomic writes data to path using the temp-file, fsync, rename pattern
// so a crash mid-write never leaves a truncated file behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".hbnb-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
