package domain

import "time"

// Customer is an opaque identity reference owned by the identity store.
// The order core only cares that it exists.
type Customer struct {
	ID   string
	Name string
}

// CatalogEntry is one product's sellable state as read from the catalog
// store. StockQuantity is the only field this service ever writes.
type CatalogEntry struct {
	ID             string
	Name           string
	UnitPriceCents int64
	StockQuantity  int
}

// LineItemRequest is one product/quantity pairing from an incoming request.
// Never persisted on its own.
type LineItemRequest struct {
	ProductID string
	Quantity  int
}

// OrderLineItem captures the unit price at order time, so later catalog
// price changes never rewrite past orders.
type OrderLineItem struct {
	ProductID      string
	UnitPriceCents int64
	Quantity       int
}

// StockDelta is the computed post-order stock state for one product.
// Ordered is carried alongside NewQuantity so the store can re-check
// sufficiency at commit time instead of trusting snapshot arithmetic.
type StockDelta struct {
	ProductID   string
	NewQuantity int
	Ordered     int
}

// Order is created exactly once per successful placement and immutable
// afterwards.
type Order struct {
	ID         string
	CustomerID string
	LineItems  []OrderLineItem
	CreatedAt  time.Time
}

func (o *Order) TotalCents() int64 {
	var total int64
	for _, li := range o.LineItems {
		total += li.UnitPriceCents * int64(li.Quantity)
	}
	return total
}
