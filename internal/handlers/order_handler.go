package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eliteshop/storefront/internal/models"
	"github.com/eliteshop/storefront/internal/service"
	"github.com/eliteshop/storefront/internal/store"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder runs the order placement workflow.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		var stockErr *store.InsufficientStockError
		switch {
		case errors.As(err, &stockErr), errors.Is(err, store.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			log.Printf("Error creating order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating order"})
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder returns a single order with its snapshot lines.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		log.Printf("Error fetching order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListUserOrders returns a user's orders, newest first.
func (h *OrderHandler) ListUserOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	list, err := h.orders.ListByUser(c.Request.Context(), c.Param("userId"), page, limit)
	if err != nil {
		log.Printf("Error fetching user orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching orders"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// ListOrders returns all orders (admin), optionally filtered by status.
// With a userId query it narrows to that user's orders instead.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := models.Status(c.Query("status"))

	if userID := c.Query("userId"); userID != "" {
		list, err := h.orders.ListByUser(c.Request.Context(), userID, page, limit)
		if err != nil {
			log.Printf("Error fetching user orders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching orders"})
			return
		}
		c.JSON(http.StatusOK, list)
		return
	}

	if status != "" && !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	list, err := h.orders.List(c.Request.Context(), status, page, limit)
	if err != nil {
		log.Printf("Error fetching orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching orders"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// UpdateOrderStatus sets an order's status.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		log.Printf("Error updating order status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating order status"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder cancels a pending order and restores its stock.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.orders.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		case errors.Is(err, store.ErrNotPending):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only pending orders can be cancelled"})
		default:
			log.Printf("Error cancelling order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error cancelling order"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}
