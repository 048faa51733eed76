package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/tienda-online/internal/domain/catalog"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Products: []catalog.Product{
			{ID: 2, Name: "Ratón", Price: 19.99, Stock: 2, CategoryID: 1, Featured: true, Image: "raton.jpg"},
			{ID: 1, Name: "Teclado", Price: 10.00, Stock: 5, CategoryID: 1, Image: "teclado.jpg"},
		},
		Categories: []catalog.Category{
			{ID: 1, Name: "Periféricos"},
		},
	}
}

func TestCatalogStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tienda.json")
	store := NewCatalogStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testCatalog()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, testCatalog(), loaded)
}

func TestCatalogStore_PreservesProductOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tienda.json")
	store := NewCatalogStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testCatalog()))
	for i := 0; i < 3; i++ {
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, loaded))
	}

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), loaded.Products[0].ID, "persisted order is stable across rewrites")
	require.Equal(t, int64(1), loaded.Products[1].ID)
}

func TestCatalogStore_MissingDocument(t *testing.T) {
	store := NewCatalogStore(filepath.Join(t.TempDir(), "no-such.json"))

	_, err := store.Load(context.Background())

	require.ErrorIs(t, err, catalog.ErrCatalogNotFound)
}

func TestCatalogStore_MalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tienda.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewCatalogStore(path)

	_, err := store.Load(context.Background())

	require.ErrorIs(t, err, catalog.ErrCatalogCorrupt)
}

func TestCatalogStore_SaveOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tienda.json")
	store := NewCatalogStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testCatalog()))

	smaller := &catalog.Catalog{
		Products:   []catalog.Product{{ID: 7, Name: "Webcam", Price: 35, Stock: 1}},
		Categories: []catalog.Category{},
	}
	require.NoError(t, store.Save(ctx, smaller))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, smaller, loaded, "save replaces the document, it never merges")
}

func TestCatalogStore_FailedSaveLeavesDocumentIntact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tienda.json")
	store := NewCatalogStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testCatalog()))

	// Pointing a second store at a missing directory makes its temp-file
	// creation fail before anything touches the live document.
	broken := NewCatalogStore(filepath.Join(dir, "gone", "tienda.json"))
	require.Error(t, broken.Save(ctx, &catalog.Catalog{}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, testCatalog(), loaded)
}
