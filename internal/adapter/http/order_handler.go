package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/logging"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

var (
	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Successfully committed orders",
	})
	ordersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Rejected placements by reason",
	}, []string{"reason"})
)

type OrderHandler struct {
	place *usecase.PlaceOrder
	query usecase.OrderRepo
	cache usecase.OrderCache
}

func NewOrderHandler(place *usecase.PlaceOrder, query usecase.OrderRepo, cache usecase.OrderCache) *OrderHandler {
	return &OrderHandler{place: place, query: query, cache: cache}
}

type placeOrderReq struct {
	CustomerID string `json:"customerId" binding:"required"`
	Items      []struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	} `json:"items" binding:"required,min=1"`
}

type orderItemResp struct {
	ProductID      string `json:"productId"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

type orderResp struct {
	OrderID    string          `json:"orderId"`
	CustomerID string          `json:"customerId"`
	TotalCents int64           `json:"totalCents"`
	Items      []orderItemResp `json:"items"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func toOrderResp(o *domain.Order) orderResp {
	resp := orderResp{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		TotalCents: o.TotalCents(),
		CreatedAt:  o.CreatedAt,
	}
	for _, li := range o.LineItems {
		resp.Items = append(resp.Items, orderItemResp{
			ProductID:      li.ProductID,
			UnitPriceCents: li.UnitPriceCents,
			Quantity:       li.Quantity,
		})
	}
	return resp
}

// PlaceOrder translates the HTTP request into the use case input and maps
// the domain taxonomy onto status codes.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	items := make([]domain.LineItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.LineItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	order, err := h.place.Execute(ctx, usecase.PlaceOrderInput{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		status, reason := placementStatus(err)
		ordersRejected.WithLabelValues(reason).Inc()
		c.JSON(status, gin.H{"error": reason, "detail": err.Error()})
		return
	}

	ordersPlaced.Inc()
	if h.cache != nil {
		if err := h.cache.SetOrder(ctx, order); err != nil {
			logging.From(c).Warn("order cache write failed", "order_id", order.ID, "err", err)
		}
	}
	c.JSON(http.StatusCreated, toOrderResp(order))
}

func placementStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, "invalid_quantity"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "customer_not_found"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product_not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, "insufficient_stock"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.cache != nil {
		o, ok, err := h.cache.GetOrder(ctx, id)
		if err != nil {
			// fall through to the store, but keep a sick Redis visible
			logging.From(c).Warn("order cache read failed", "order_id", id, "err", err)
		} else if ok {
			c.JSON(http.StatusOK, toOrderResp(o))
			return
		}
	}

	o, err := h.query.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}

	if h.cache != nil {
		_ = h.cache.SetOrder(ctx, o)
	}
	c.JSON(http.StatusOK, toOrderResp(o))
}
