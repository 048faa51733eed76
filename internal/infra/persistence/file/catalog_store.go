package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"example.com/tienda-online/internal/domain/catalog"
)

// CatalogStore persists the catalog as a single JSON document on disk,
// rewritten wholesale on every save.
type CatalogStore struct {
	path string
}

func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

func (s *CatalogStore) Load(ctx context.Context) (*catalog.Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, catalog.ErrCatalogNotFound
	}
	if err != nil {
		return nil, err
	}

	var c catalog.Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrCatalogCorrupt, err)
	}
	return &c, nil
}

// Save writes to a sibling temp file and renames it over the document, so a
// write that fails midway never truncates the live catalog.
func (s *CatalogStore) Save(ctx context.Context, c *catalog.Catalog) error {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tienda-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
