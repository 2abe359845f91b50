package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eliteshop/storefront/internal/store"
)

type HealthHandler struct {
	products store.ProductStore
	orders   store.OrderStore
	backend  string // "MongoDB" or "In-Memory"
}

func NewHealthHandler(products store.ProductStore, orders store.OrderStore, backend string) *HealthHandler {
	return &HealthHandler{products: products, orders: orders, backend: backend}
}

// HealthCheck reports liveness, the storage backend in use and record counts.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	productCount, err := h.products.Count(ctx)
	if err != nil {
		log.Printf("Health check: product count failed: %v", err)
	}
	orderCount, err := h.orders.Count(ctx)
	if err != nil {
		log.Printf("Health check: order count failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  h.backend,
		"products":  productCount,
		"orders":    orderCount,
	})
}
