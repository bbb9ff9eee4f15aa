package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

type ProductHandler struct {
	products usecase.ProductRepo
}

func NewProductHandler(products usecase.ProductRepo) *ProductHandler {
	return &ProductHandler{products: products}
}

// GetStock reports a product's live availability. Diagnostic read only;
// placements never trust this value, they re-check at commit.
func (h *ProductHandler) GetStock(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	entries, err := h.products.FindAllByID(ctx, []string{id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	if len(entries) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
		return
	}

	e := entries[0]
	c.JSON(http.StatusOK, gin.H{
		"productId":      e.ID,
		"name":           e.Name,
		"unitPriceCents": e.UnitPriceCents,
		"stockQuantity":  e.StockQuantity,
	})
}
