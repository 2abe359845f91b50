package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eliteshop/storefront/internal/models"
	"github.com/eliteshop/storefront/internal/store"
)

type ProductHandler struct {
	products store.ProductStore
}

func NewProductHandler(products store.ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

// ListProducts returns a filtered, paginated product listing.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := store.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sort"),
		SortDesc: c.DefaultQuery("order", "desc") == "desc",
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "12"))

	if v := c.Query("minPrice"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &min
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &max
		}
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		filter.Featured = &featured
	}

	list, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching products"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetProduct returns a single active product.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Printf("Error fetching product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the catalog (admin).
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update to a product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Printf("Error updating product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct soft-deletes: the product is deactivated, never removed,
// so historical order lines keep a valid reference.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	err := h.products.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Printf("Error deleting product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetCategories lists the distinct categories of active products.
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}
