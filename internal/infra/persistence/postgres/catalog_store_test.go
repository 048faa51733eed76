package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"example.com/tienda-online/internal/domain/catalog"
)

// fakeConn imitates the version-stamped row so the compare-and-swap logic
// can be exercised without a live server.
type fakeConn struct {
	doc     []byte
	version int64
}

func (f *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if strings.HasPrefix(strings.TrimSpace(sql), "CREATE") {
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	}
	raw := args[0].([]byte)
	expected := args[1].(int64)
	if expected != f.version {
		return pgconn.NewCommandTag("UPDATE 0"), nil
	}
	f.doc = raw
	f.version++
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &fakeRow{doc: f.doc, version: f.version}
}

type fakeRow struct {
	doc     []byte
	version int64
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.doc == nil {
		return pgx.ErrNoRows
	}
	*dest[0].(*[]byte) = r.doc
	*dest[1].(*int64) = r.version
	return nil
}

func seededStore(t *testing.T) (*CatalogStore, *fakeConn) {
	t.Helper()
	db := &fakeConn{
		doc:     []byte(`{"productos":[{"id":1,"nombre":"Teclado","precio":10,"stock":5,"id_categoria":1,"destacado":false,"img":""}],"categorias":[]}`),
		version: 5,
	}
	return &CatalogStore{db: db}, db
}

func TestCatalogStore_LoadStampsSnapshot(t *testing.T) {
	store, _ := seededStore(t)

	c, err := store.Load(context.Background())

	require.NoError(t, err)
	require.Equal(t, int64(5), c.Version)
	require.Equal(t, int64(5), c.Products[0].Stock)
}

func TestCatalogStore_SaveBumpsVersion(t *testing.T) {
	store, db := seededStore(t)
	ctx := context.Background()

	c, err := store.Load(ctx)
	require.NoError(t, err)
	c.Products[0].Stock--

	require.NoError(t, store.Save(ctx, c))
	require.Equal(t, int64(6), db.version)
}

func TestCatalogStore_StaleSnapshotConflicts(t *testing.T) {
	store, _ := seededStore(t)
	ctx := context.Background()

	stale, err := store.Load(ctx)
	require.NoError(t, err)

	winner, err := store.Load(ctx)
	require.NoError(t, err)
	winner.Products[0].Stock -= 2
	require.NoError(t, store.Save(ctx, winner))

	stale.Products[0].Stock--
	require.ErrorIs(t, store.Save(ctx, stale), catalog.ErrVersionConflict)
}

func TestCatalogStore_InterleavedLoadDoesNotBlessStaleSave(t *testing.T) {
	store, db := seededStore(t)
	ctx := context.Background()

	pending, err := store.Load(ctx)
	require.NoError(t, err)

	// Another instance commits, moving the stamp forward.
	db.version = 6

	// An unrelated read on this store (a login handing out the catalog)
	// must not rubber-stamp the pending snapshot.
	_, err = store.Load(ctx)
	require.NoError(t, err)

	pending.Products[0].Stock--
	require.ErrorIs(t, store.Save(ctx, pending), catalog.ErrVersionConflict,
		"a save carries the version of its own snapshot, not of the latest load")
}

func TestCatalogStore_MissingRow(t *testing.T) {
	store := &CatalogStore{db: &fakeConn{}}

	_, err := store.Load(context.Background())

	require.ErrorIs(t, err, catalog.ErrCatalogNotFound)
}

func TestCatalogStore_MalformedDocument(t *testing.T) {
	store := &CatalogStore{db: &fakeConn{doc: []byte("{not json"), version: 1}}

	_, err := store.Load(context.Background())

	require.ErrorIs(t, err, catalog.ErrCatalogCorrupt)
}
