package checkout

import (
	"example.com/tienda-online/internal/domain/catalog"
)

// Validation is the outcome of pricing a cart against a catalog snapshot.
type Validation struct {
	// Total is the cart total recomputed from server-held prices.
	Total float64
	// StockShort is set when any matched line asks for more units than the
	// product has in stock.
	StockShort bool
	// UnknownIDs lists cart lines whose id has no catalog match.
	UnknownIDs []int64
	// Matched counts cart lines that found a product.
	Matched int
}

// Validate recomputes the cart total from the snapshot's prices and checks
// stock sufficiency. It never mutates the snapshot. Lines with an unknown id
// contribute nothing to the total and raise no stock flag; they are only
// reported in UnknownIDs so callers in strict mode can reject them.
//
// Stock is checked against the aggregate demand per product, so a cart that
// splits one product across several lines cannot pass line by line and then
// drive stock negative at settlement.
func Validate(cart []catalog.CartLine, snapshot *catalog.Catalog) Validation {
	var v Validation
	demand := make(map[int64]int64, len(cart))
	for _, line := range cart {
		i := snapshot.FindProduct(line.ProductID)
		if i < 0 {
			v.UnknownIDs = append(v.UnknownIDs, line.ProductID)
			continue
		}
		p := snapshot.Products[i]
		v.Total += p.Price * float64(line.Quantity)
		demand[line.ProductID] += line.Quantity
		if p.Stock < demand[line.ProductID] {
			v.StockShort = true
		}
		v.Matched++
	}
	return v
}
