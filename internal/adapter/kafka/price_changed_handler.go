package kafka

import (
	"context"
	"errors"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/logging"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

// PriceChangedHandler applies catalog price updates pushed by the owning
// catalog service.
type PriceChangedHandler struct {
	change *usecase.ChangePrice
}

func NewPriceChangedHandler(change *usecase.ChangePrice) *PriceChangedHandler {
	return &PriceChangedHandler{change: change}
}

func (h *PriceChangedHandler) Handle(ctx context.Context, ev usecase.PriceChangedMsg) error {
	err := h.change.Execute(ctx, ev.ProductID, ev.PriceCents)
	if err == nil {
		return nil
	}
	// A product we have never seen, or a bogus price, is not going to get
	// better on retry; consume the message and move on.
	if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrInvalidPrice) {
		logging.FromCtx(ctx).Warn("skipping price change",
			"product_id", ev.ProductID, "price_cents", ev.PriceCents, "err", err)
		return nil
	}
	return err
}
