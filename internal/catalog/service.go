// Package catalog provides display metadata for account classifications.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/resultado/dre/internal/classification"
	"github.com/resultado/dre/internal/model"
)

// Service provides in-memory lookup over the account catalog.
type Service struct {
	entries          []model.CatalogEntry
	byClassification map[string]model.CatalogEntry
}

// NewService creates a Service. Later entries for the same normalized
// classification replace earlier ones; unclassified entries are ignored.
func NewService(entries []model.CatalogEntry) *Service {
	byClass := make(map[string]model.CatalogEntry, len(entries))
	for _, e := range entries {
		c := classification.Normalize(e.Classification)
		if c == "" {
			continue
		}
		byClass[c] = e
	}
	return &Service{entries: entries, byClassification: byClass}
}

// Load reads a catalog CSV from path and returns a Service.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return NewService(entries), nil
}

// All returns all entries in file order.
func (s *Service) All() []model.CatalogEntry {
	return s.entries
}

// Get returns the entry for a classification in any formatting.
func (s *Service) Get(code string) (model.CatalogEntry, bool) {
	e, ok := s.byClassification[classification.Normalize(code)]
	return e, ok
}

// Lookup returns the display name and depth for a classification.
func (s *Service) Lookup(code string) (string, int, bool) {
	e, ok := s.Get(code)
	if !ok {
		return "", 0, false
	}
	return e.Name, e.Depth, true
}

// Save writes the catalog to path, creating parent directories.
func (s *Service) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating catalog file: %w", err)
	}
	defer f.Close()

	if err := WriteEntries(f, s.entries); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
