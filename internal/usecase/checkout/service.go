package checkout

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/tienda-online/internal/domain/catalog"
)

// PriceEpsilon is the absolute tolerance used when comparing the client's
// total against the recomputed server total. It absorbs floating-point
// rounding drift; any larger deviation is a price-integrity violation.
const PriceEpsilon = 0.01

// Receipt identifies a committed settlement.
type Receipt struct {
	ID        string
	Total     float64
	Lines     []catalog.CartLine
	CreatedAt time.Time
}

// Settlement is the outcome of a committed checkout.
type Settlement struct {
	ValidatedTotal float64
	Catalog        *catalog.Catalog
	Receipt        Receipt
}

// Service validates a client-submitted cart against the stored catalog and,
// if every check passes, decrements stock and persists the result. Either
// all of a cart's effects are persisted or none are.
type Service struct {
	store     catalog.Store
	strictIDs bool

	// mu serializes the load/mutate/save sequence: the store contract is a
	// wholesale read-modify-write with no versioning on most backends, so
	// two overlapping settlements could otherwise both pass a stock check
	// against the same pre-decrement value.
	mu sync.Mutex
}

func NewService(store catalog.Store, strictIDs bool) *Service {
	return &Service{
		store:     store,
		strictIDs: strictIDs,
	}
}

// Settle runs the two-phase checkout: a read-only validate phase fully gates
// the write phase, so no mutation ever interleaves with validation.
//
// The price check runs before the stock check; a cart that fails both is
// reported as a price mismatch.
func (s *Service) Settle(ctx context.Context, cart []catalog.CartLine, clientTotal float64) (*Settlement, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	v := Validate(cart, snapshot)
	if s.strictIDs && len(v.UnknownIDs) > 0 {
		return nil, fmt.Errorf("%w: ids %v", ErrUnknownProduct, v.UnknownIDs)
	}
	if math.Abs(v.Total-clientTotal) > PriceEpsilon {
		return nil, &PriceMismatchError{
			ServerTotal: v.Total,
			ClientTotal: clientTotal,
			Catalog:     snapshot,
		}
	}
	if v.StockShort {
		return nil, ErrInsufficientStock
	}
	if v.Matched == 0 {
		return nil, ErrNothingSettled
	}

	// Write phase. Decrements happen on a copy so a failed persist leaves
	// the loaded snapshot untouched and nothing half-settled escapes.
	updated := snapshot.Clone()
	for _, line := range cart {
		if i := updated.FindProduct(line.ProductID); i >= 0 {
			updated.Products[i].Stock -= line.Quantity
		}
	}

	if err := s.store.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}

	lines := make([]catalog.CartLine, len(cart))
	copy(lines, cart)
	return &Settlement{
		ValidatedTotal: v.Total,
		Catalog:        updated,
		Receipt: Receipt{
			ID:        uuid.NewString(),
			Total:     v.Total,
			Lines:     lines,
			CreatedAt: time.Now().UTC(),
		},
	}, nil
}
