package checkout

import (
	"errors"
	"fmt"

	"example.com/tienda-online/internal/domain/catalog"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrPriceMismatch     = errors.New("cart total does not match server pricing")
	ErrInsufficientStock = errors.New("insufficient stock for some products")
	ErrUnknownProduct    = errors.New("cart references a product not in the catalog")
	ErrNothingSettled    = errors.New("no cart line matched a catalog product")
	ErrNotPersisted      = errors.New("settlement could not be persisted")
)

// PriceMismatchError carries the untouched catalog snapshot so the client
// can resynchronize its cached prices before retrying.
type PriceMismatchError struct {
	ServerTotal float64
	ClientTotal float64
	Catalog     *catalog.Catalog
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("cart total %.2f does not match server total %.2f", e.ClientTotal, e.ServerTotal)
}

func (e *PriceMismatchError) Is(target error) bool {
	return target == ErrPriceMismatch
}
