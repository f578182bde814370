// Package storage persists page snapshots as YAML files in a corpus
// directory, one file per page.
package storage

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MutabPato/interlinker-tool/models"
)

type Store struct {
	dir string
}

// NewStore creates the snapshot directory if needed and returns a store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the snapshot directory path.
func (s *Store) Dir() string { return s.dir }

// SavePage writes one page snapshot, overwriting any previous snapshot of
// the same URL.
func (s *Store) SavePage(page models.Page) error {
	data, err := yaml.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	path := filepath.Join(s.dir, s.filename(page.URL))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// LoadPages reads every snapshot in the directory, sorted by URL for a
// stable corpus order. Files that fail to decode are skipped.
func (s *Store) LoadPages() ([]models.Page, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var pages []models.Page
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot %s: %w", entry.Name(), err)
		}
		var page models.Page
		if err := yaml.Unmarshal(data, &page); err != nil {
			continue
		}
		if page.URL == "" {
			continue
		}
		pages = append(pages, page)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].URL < pages[j].URL })
	return pages, nil
}

// filename hashes the URL so snapshots survive characters that are invalid
// in file names.
func (s *Store) filename(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.yaml", hash[:12])
}
