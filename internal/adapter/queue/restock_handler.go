package queue

import (
	"context"
	"errors"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/logging"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

// RestockHandler applies warehouse replenishments to the catalog. Intended
// for use with queue.JSONHandler[usecase.StockReplenishedMsg].
type RestockHandler struct {
	restock *usecase.Restock
}

func NewRestockHandler(restock *usecase.Restock) *RestockHandler {
	return &RestockHandler{restock: restock}
}

func (h *RestockHandler) HandleReplenish(ctx context.Context, msg usecase.StockReplenishedMsg) error {
	err := h.restock.Execute(ctx, msg.ProductID, msg.Quantity)
	if err == nil {
		return nil
	}
	// Malformed messages would requeue forever; ack and log them instead.
	if errors.Is(err, domain.ErrInvalidQuantity) || errors.Is(err, domain.ErrProductNotFound) {
		logging.FromCtx(ctx).Warn("dropping bad replenish message",
			"product_id", msg.ProductID, "quantity", msg.Quantity, "err", err)
		return nil
	}
	return err
}
