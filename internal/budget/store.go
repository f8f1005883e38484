// Package budget tracks monthly spending targets per category. Budgets
// live only on this machine; the backend never sees them.
package budget

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is the persistence capability for the budget document. The wallet
// view is its only writer and the semantics are last-writer-wins, so a
// single Load/Save pair is the whole contract.
type Store interface {
	// Load returns the stored document, or nil when nothing has been saved yet.
	Load() ([]byte, error)

	// Save overwrites the stored document in a single write.
	Save(data []byte) error
}

// FileStore keeps the budget document in one JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the budget document. A missing file is not an error.
func (s *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read budget file: %w", err)
	}
	return data, nil
}

// Save writes the document to a temporary file and renames it into place,
// so a crash mid-write never leaves a truncated document behind.
func (s *FileStore) Save(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create budget directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "budgets-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp budget file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write budget file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close budget file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace budget file: %w", err)
	}

	return nil
}
