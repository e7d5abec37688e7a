// Package store persists the engine's state documents as flat JSON files
// under the data directory, one document per store.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the JSON document at path into v. A missing, unreadable, or
// corrupt file is not an error: v keeps the caller's default value and
// Load reports false.
func Load(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}

// Save writes v as the whole JSON document at path, creating the parent
// directory if needed. Writes are synchronous and replace the previous
// document; last write wins.
func Save(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	return nil
}
