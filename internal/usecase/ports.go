package usecase

import (
	"context"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
)

// CustomerRepo is the identity-store capability this core consumes.
type CustomerRepo interface {
	// FindByID returns (nil, nil) when no customer exists with the id.
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

// ProductRepo covers catalog reads plus the two writer paths that are not
// part of an order commit (restock, price change). Both writers use atomic
// in-place updates so they follow the same concurrency discipline as the
// order decrement.
type ProductRepo interface {
	// FindAllByID returns only the entries that exist, in no particular
	// order. Callers detect missing products by comparing counts.
	FindAllByID(ctx context.Context, ids []string) ([]domain.CatalogEntry, error)
	// Restock atomically adds qty to a product's stock.
	Restock(ctx context.Context, productID string, qty int) error
	// UpdatePrice overwrites a product's unit price.
	UpdatePrice(ctx context.Context, productID string, priceCents int64) error
}

// OrderRepo persists orders. Create is the commit boundary: the order row,
// its line items, and every stock delta are applied in one transaction. The
// decrement is conditional on live stock, so a snapshot that went stale
// between validation and commit fails the whole transaction with
// domain.ErrInsufficientStock and leaves no trace of the order.
type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order, deltas []domain.StockDelta) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

// OrderPublisher announces committed orders. Strictly post-commit and
// advisory: a publish failure never unwinds a placement.
type OrderPublisher interface {
	PublishPlaced(ctx context.Context, msg OrderPlacedMsg) error
}

// OrderCache is a read-side cache for order lookups. Stock quantities are
// never cached.
type OrderCache interface {
	SetOrder(ctx context.Context, o *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, bool, error)
}
