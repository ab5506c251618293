// Package store persists collections as pretty-printed JSON documents for
// the static site. Documents are overwritten whole on every run; there is no
// incremental update.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Store writes JSON documents into one output directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "store: create output dir %s", dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// WriteJSON serializes v with two-space indentation and overwrites the named
// document.
func (s *Store) WriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "store: marshal %s", name)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "store: write %s", name)
	}

	zap.L().Info("document written",
		zap.String("file", name),
		zap.Int("bytes", len(data)),
	)
	return nil
}
