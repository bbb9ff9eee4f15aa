package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcelokanu/gostock-orders/internal/adapter/http/middleware"
	"github.com/marcelokanu/gostock-orders/internal/logging"
)

func NewRouter(oh *OrderHandler, ph *ProductHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/orders", oh.PlaceOrder)
		v1.GET("/orders/:id", oh.GetOrderByID)
		v1.GET("/products/:id/stock", ph.GetStock)
	}

	return r
}
