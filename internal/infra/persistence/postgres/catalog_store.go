package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/tienda-online/internal/domain/catalog"
)

// conn is the slice of pgxpool.Pool the store needs.
type conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CatalogStore keeps the catalog document in a version-stamped row. The
// stamp travels on each loaded snapshot, so Save compares against the
// version of the exact snapshot it is persisting — a Load by some other
// caller in between cannot silently bless a stale write. A lost race
// reports catalog.ErrVersionConflict, which callers treat as retryable.
type CatalogStore struct {
	db conn
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{db: pool}
}

func (s *CatalogStore) Init(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS catalog_documents (
            id      SMALLINT PRIMARY KEY,
            doc     JSONB  NOT NULL,
            version BIGINT NOT NULL DEFAULT 1
        )
    `)
	return err
}

func (s *CatalogStore) Load(ctx context.Context) (*catalog.Catalog, error) {
	var (
		raw     []byte
		version int64
	)
	err := s.db.QueryRow(ctx,
		`SELECT doc, version FROM catalog_documents WHERE id = 1`,
	).Scan(&raw, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, catalog.ErrCatalogNotFound
	}
	if err != nil {
		return nil, err
	}

	var c catalog.Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrCatalogCorrupt, err)
	}
	c.Version = version
	return &c, nil
}

func (s *CatalogStore) Save(ctx context.Context, c *catalog.Catalog) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `
        UPDATE catalog_documents
        SET doc = $1, version = version + 1
        WHERE id = 1 AND version = $2
    `, raw, c.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrVersionConflict
	}
	return nil
}
