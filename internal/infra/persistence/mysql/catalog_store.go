package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"example.com/tienda-online/internal/domain/catalog"
)

// CatalogStore keeps the catalog document in a single row, mirroring the
// wholesale read/write contract of the file backend. Last writer wins.
type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// Init creates the backing table if it does not exist yet. The document is
// seeded separately; an empty table still means "catalog not found".
func (s *CatalogStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS catalog_documents (
            id  TINYINT PRIMARY KEY,
            doc JSON NOT NULL
        )
    `)
	return err
}

func (s *CatalogStore) Load(ctx context.Context) (*catalog.Catalog, error) {
	row := s.db.QueryRowContext(ctx, `SELECT doc FROM catalog_documents WHERE id = 1`)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrCatalogNotFound
		}
		return nil, err
	}

	var c catalog.Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrCatalogCorrupt, err)
	}
	return &c, nil
}

func (s *CatalogStore) Save(ctx context.Context, c *catalog.Catalog) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO catalog_documents (id, doc) VALUES (1, ?)
        ON DUPLICATE KEY UPDATE doc = VALUES(doc)
    `, raw)
	return err
}
