// Package filestore implements the document persistence strategy: the whole
// dataset lives in one JSON file ({"menu": [...], "bills": [...]}) that is
// rewritten wholesale on every mutation. A single mutex serializes the
// read-mutate-write cycle, so concurrent writers cannot lose updates.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	domainRepo "github.com/davidkuria/resto-api/internal/domain/repository"
)

type document struct {
	Menu  []entity.MenuItem `json:"menu"`
	Bills []entity.Bill     `json:"bills"`
}

// Store owns the in-memory dataset and its durable file. All mutation is
// funneled through the repositories it hands out; callers never touch the
// collections directly.
type Store struct {
	mu   sync.Mutex
	path string
	doc  document
}

// Open loads the document file, creating an empty dataset (and the parent
// directory) when the file does not exist yet.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
	}
	return s, nil
}

// Bills returns the bill repository backed by this store.
func (s *Store) Bills() domainRepo.BillRepository {
	return &billRepository{store: s}
}

// Menu returns the menu repository backed by this store.
func (s *Store) Menu() domainRepo.MenuRepository {
	return &menuRepository{store: s}
}

// flushLocked persists the whole snapshot. Caller must hold s.mu. The write
// goes to a temp file first and is renamed into place, so a crash mid-write
// never leaves a truncated dataset behind.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

func cloneBill(b entity.Bill) entity.Bill {
	out := b
	out.Items = make([]entity.BillItem, len(b.Items))
	copy(out.Items, b.Items)
	return out
}
