// Package store persists the board's durable collections as whole-file JSON
// snapshots. Every mutation loads the entire collection, changes it in
// memory, and rewrites the file, serialized under the store's mutex.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors returned by the stores.
var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOutOfRange         = errors.New("position out of range")
)

// readSnapshot loads a whole collection from disk into v.
func readSnapshot(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// writeSnapshot rewrites a whole collection to disk.
func writeSnapshot(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ensureSnapshot creates the backing file with an initial collection if it
// does not exist yet. An existing file is left untouched.
func ensureSnapshot(path string, initial any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return writeSnapshot(path, initial)
}
