package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/logging"
)

type PlaceOrderInput struct {
	CustomerID string
	Items      []domain.LineItemRequest
}

// PlaceOrder coordinates a single order placement: customer lookup, catalog
// snapshot, validation, then the atomic commit through OrderRepo.Create.
// The use case itself is stateless; all shared state lives in the stores.
type PlaceOrder struct {
	customers CustomerRepo
	products  ProductRepo
	orders    OrderRepo
	pub       OrderPublisher
}

func NewPlaceOrder(customers CustomerRepo, products ProductRepo, orders OrderRepo, pub OrderPublisher) *PlaceOrder {
	return &PlaceOrder{customers: customers, products: products, orders: orders, pub: pub}
}

func (uc *PlaceOrder) Execute(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	// Malformed quantities short-circuit before any store round trip.
	if err := domain.CheckQuantities(in.Items); err != nil {
		return nil, err
	}

	customer, err := uc.customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	snapshot, err := uc.products.FindAllByID(ctx, domain.DistinctProductIDs(in.Items))
	if err != nil {
		return nil, err
	}

	items, deltas, err := domain.ValidateOrder(in.Items, snapshot)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		LineItems:  items,
		CreatedAt:  time.Now().UTC(),
	}

	// Single commit boundary: order row, line items, and every decrement
	// land together or not at all. The store re-checks stock here, so a
	// concurrent placement that drained the snapshot loses cleanly.
	if err := uc.orders.Create(ctx, order, deltas); err != nil {
		return nil, err
	}

	if uc.pub != nil {
		msg := OrderPlacedMsg{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			TotalCents: order.TotalCents(),
		}
		for _, li := range order.LineItems {
			msg.Items = append(msg.Items, OrderItemMsg{ProductID: li.ProductID, Quantity: li.Quantity})
		}
		if err := uc.pub.PublishPlaced(ctx, msg); err != nil {
			// The order is committed; the event is advisory.
			logging.FromCtx(ctx).Warn("order placed but event publish failed",
				"order_id", order.ID, "err", err)
		}
	}

	return order, nil
}
