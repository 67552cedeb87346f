package instinct

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Load reads the document at path.
//
// A missing file is not an error: Load returns an empty document so the
// store is usable before its first save. A file that exists but cannot be
// parsed returns an error wrapping ErrCorruptStore; the store's own
// operations treat that leniently (see Store), import sources do not.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	// Normalize documents written by older or foreign tooling
	if doc.Version == "" {
		doc.Version = DocumentVersion
	}
	if doc.Instincts == nil {
		doc.Instincts = []Instinct{}
	}

	return &doc, nil
}

// Save stamps the document's lastUpdated timestamp and writes the full
// document to path, creating missing parent directories. The write is
// atomic: a temp file in the same directory is renamed over the target, so
// a concurrent reader never observes a half-written file.
func Save(path string, doc *Document) error {
	now := time.Now().UTC()
	doc.LastUpdated = &now
	return writeJSON(path, doc)
}

// writeJSON serializes v as pretty-printed JSON with a trailing newline and
// writes it atomically to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming store file: %w", err)
	}

	return nil
}
