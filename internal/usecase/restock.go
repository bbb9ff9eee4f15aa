package usecase

import (
	"context"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
)

// Restock adds received stock to a catalog entry. Driven by warehouse
// messages, not by order placement.
type Restock struct {
	products ProductRepo
}

func NewRestock(products ProductRepo) *Restock {
	return &Restock{products: products}
}

func (uc *Restock) Execute(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return &domain.QuantityError{ProductID: productID, Quantity: qty}
	}
	return uc.products.Restock(ctx, productID, qty)
}

// ChangePrice applies a price update pushed by the catalog service that
// owns pricing. Existing orders keep the unit price they were placed at.
type ChangePrice struct {
	products ProductRepo
}

func NewChangePrice(products ProductRepo) *ChangePrice {
	return &ChangePrice{products: products}
}

func (uc *ChangePrice) Execute(ctx context.Context, productID string, priceCents int64) error {
	if priceCents < 0 {
		return domain.ErrInvalidPrice
	}
	return uc.products.UpdatePrice(ctx, productID, priceCents)
}
