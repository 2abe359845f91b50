package models

import "time"

// Categories the storefront sells.
var Categories = []string{"Electronics", "Fashion", "Home", "Sports", "Books", "Beauty", "Furniture"}

type Product struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Price         float64   `json:"price" bson:"price"`
	OriginalPrice float64   `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Description   string    `json:"description" bson:"description"`
	ImageURL      string    `json:"imageUrl" bson:"imageUrl"`
	Category      string    `json:"category" bson:"category"`
	Stock         int       `json:"stock" bson:"stock"`
	Rating        float64   `json:"rating" bson:"rating"`
	Reviews       int       `json:"reviews" bson:"reviews"`
	Featured      bool      `json:"featured" bson:"featured"`
	Tags          []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	IsActive      bool      `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Price         float64  `json:"price" binding:"min=0"`
	OriginalPrice float64  `json:"originalPrice" binding:"omitempty,min=0"`
	Description   string   `json:"description" binding:"required,max=1000"`
	ImageURL      string   `json:"imageUrl" binding:"required,url"`
	Category      string   `json:"category" binding:"required,oneof=Electronics Fashion Home Sports Books Beauty Furniture"`
	Stock         int      `json:"stock" binding:"min=0"`
	Featured      bool     `json:"featured"`
	Tags          []string `json:"tags"`
}

// UpdateProductRequest carries optional fields; nil means leave unchanged.
type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=200"`
	Price         *float64 `json:"price" binding:"omitempty,min=0"`
	OriginalPrice *float64 `json:"originalPrice" binding:"omitempty,min=0"`
	Description   *string  `json:"description" binding:"omitempty,max=1000"`
	ImageURL      *string  `json:"imageUrl" binding:"omitempty,url"`
	Category      *string  `json:"category" binding:"omitempty,oneof=Electronics Fashion Home Sports Books Beauty Furniture"`
	Stock         *int     `json:"stock" binding:"omitempty,min=0"`
	Featured      *bool    `json:"featured"`
	Tags          []string `json:"tags"`
}

// ProductList is the paginated envelope returned by the listing endpoint.
type ProductList struct {
	Products    []Product `json:"products"`
	Total       int64     `json:"total"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
}
