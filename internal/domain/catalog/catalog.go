package catalog

// Product is a store item as persisted in the catalog document. JSON tags
// follow the wire contract the browser client already speaks.
type Product struct {
	ID         int64   `json:"id"`
	Name       string  `json:"nombre"`
	Price      float64 `json:"precio"`
	Stock      int64   `json:"stock"`
	CategoryID int64   `json:"id_categoria"`
	Featured   bool    `json:"destacado"`
	Image      string  `json:"img"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Catalog is the single persisted store document. Product order is stable
// across load/save cycles.
type Catalog struct {
	Products   []Product  `json:"productos"`
	Categories []Category `json:"categorias"`

	// Version is the concurrency stamp of the load this snapshot came from.
	// Backends without versioning leave it zero; it never reaches the wire.
	Version int64 `json:"-"`
}

// CartLine is one client-supplied cart entry. Untrusted input.
type CartLine struct {
	ProductID int64 `json:"id"`
	Quantity  int64 `json:"cantidad"`
}

// FindProduct returns the index of the first product with the given id,
// or -1 when no product matches. Duplicate ids are not expected; if they
// ever occur the first match wins.
func (c *Catalog) FindProduct(id int64) int {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so settlement can mutate a working copy while
// the loaded snapshot stays untouched for rejection responses.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Products:   make([]Product, len(c.Products)),
		Categories: make([]Category, len(c.Categories)),
		Version:    c.Version,
	}
	copy(out.Products, c.Products)
	copy(out.Categories, c.Categories)
	return out
}
