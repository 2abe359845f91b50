package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/eliteshop/storefront/internal/service"
	"github.com/eliteshop/storefront/internal/store"
)

// NewRouter wires the full REST surface onto a gin engine.
func NewRouter(products store.ProductStore, orders *service.OrderService, orderStore store.OrderStore, backend string) *gin.Engine {
	productHandler := NewProductHandler(products)
	orderHandler := NewOrderHandler(orders)
	authHandler := NewAuthHandler()
	healthHandler := NewHealthHandler(products, orderStore, backend)

	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/health", healthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/meta/categories", productHandler.GetCategories)
		api.GET("/products/:id", productHandler.GetProduct)
		api.POST("/products", productHandler.CreateProduct)
		api.PUT("/products/:id", productHandler.UpdateProduct)
		api.DELETE("/products/:id", productHandler.DeleteProduct)

		api.GET("/orders", orderHandler.ListOrders)
		api.GET("/orders/user/:userId", orderHandler.ListUserOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.POST("/orders", orderHandler.CreateOrder)
		api.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		api.PUT("/orders/:id/cancel", orderHandler.CancelOrder)

		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/logout", authHandler.Logout)
	}

	return router
}

// corsMiddleware is permissive, matching the storefront UI's expectations.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
