// Package store provides JSON document persistence shared by every ledger.
// Each ledger keeps its whole state in a single document under the data
// directory and rewrites it on every mutation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CorruptError reports a document that exists on disk but cannot be parsed.
// Callers treat the store as empty and keep going.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt store %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// PersistError reports a failed write. The in-memory state is already
// updated when this is returned; callers log it and continue.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persisting %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Load reads the JSON document at path into doc. A missing file leaves doc
// at its zero value and returns nil. Unparseable content returns a
// *CorruptError.
func Load(path string, doc any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading store %s: %w", path, err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return &CorruptError{Path: path, Err: err}
	}
	return nil
}

// Save writes doc as indented JSON to path, creating parent directories as
// needed. Any failure is wrapped in a *PersistError.
func Save(path string, doc any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}
