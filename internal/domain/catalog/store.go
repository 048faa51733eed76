package catalog

import "context"

// Store is wholesale read/write access to the persisted catalog document.
// Save overwrites the whole document; there is no merge and no partial write.
type Store interface {
	// Load returns the current document. An absent or malformed document is
	// an error, never an empty default: checkout must not run without
	// server-held pricing data.
	Load(ctx context.Context) (*Catalog, error)
	Save(ctx context.Context, c *Catalog) error
}
