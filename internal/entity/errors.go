package domain

import (
	"errors"
	"fmt"
)

// Sentinels for the placement error taxonomy. All of them are terminal for
// the request that triggered them; none is retryable. Infrastructure
// failures are not part of this taxonomy and pass through unwrapped.
var (
	ErrCustomerNotFound  = errors.New("customer does not exist")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrProductNotFound   = errors.New("one or more products not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrOrderNotFound     = errors.New("order not found")
)

// QuantityError reports a non-positive requested quantity.
type QuantityError struct {
	ProductID string
	Quantity  int
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("product %s: requested quantity %d must be positive", e.ProductID, e.Quantity)
}

func (e *QuantityError) Unwrap() error { return ErrInvalidQuantity }

// UnknownProductError reports that the catalog resolved fewer entries than
// the request named distinct products.
type UnknownProductError struct {
	Requested int
	Resolved  int
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("requested %d distinct products, catalog resolved %d", e.Requested, e.Resolved)
}

func (e *UnknownProductError) Unwrap() error { return ErrProductNotFound }

// StockError reports a product that cannot cover the requested quantity.
// Available is included so callers can render a precise message.
type StockError struct {
	ProductID string
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("product %s: only %d pieces in stock", e.ProductID, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
