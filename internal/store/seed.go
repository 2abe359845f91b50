package store

import "github.com/eliteshop/storefront/internal/models"

// SampleProducts is the demo catalog loaded into the in-memory fallback and
// offered by cmd/seed for fresh MongoDB databases.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Wireless Headphones",
			Price:       99.99,
			Description: "High-quality wireless headphones with noise cancellation",
			ImageURL:    "https://via.placeholder.com/200x200?text=Headphones",
			Category:    "Electronics",
			Stock:       50,
			Featured:    true,
		},
		{
			Name:        "Smartphone",
			Price:       699.99,
			Description: "Latest smartphone with advanced features",
			ImageURL:    "https://via.placeholder.com/200x200?text=Smartphone",
			Category:    "Electronics",
			Stock:       30,
			Featured:    true,
		},
		{
			Name:        "Laptop",
			Price:       1299.99,
			Description: "Powerful laptop for work and gaming",
			ImageURL:    "https://via.placeholder.com/200x200?text=Laptop",
			Category:    "Electronics",
			Stock:       20,
		},
		{
			Name:        "Smart Watch",
			Price:       299.99,
			Description: "Fitness tracking smartwatch",
			ImageURL:    "https://via.placeholder.com/200x200?text=Watch",
			Category:    "Electronics",
			Stock:       40,
		},
		{
			Name:        "Bluetooth Speaker",
			Price:       79.99,
			Description: "Portable Bluetooth speaker with excellent sound quality",
			ImageURL:    "https://via.placeholder.com/200x200?text=Speaker",
			Category:    "Electronics",
			Stock:       60,
		},
		{
			Name:        "Gaming Mouse",
			Price:       49.99,
			Description: "High-precision gaming mouse with RGB lighting",
			ImageURL:    "https://via.placeholder.com/200x200?text=Mouse",
			Category:    "Electronics",
			Stock:       75,
		},
	}
}
