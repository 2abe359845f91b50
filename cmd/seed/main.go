package main

import (
	"context"
	"log"

	"github.com/eliteshop/storefront/internal/config"
	"github.com/eliteshop/storefront/internal/database"
	"github.com/eliteshop/storefront/internal/models"
	"github.com/eliteshop/storefront/internal/store"
)

// Seeds the sample catalog into a fresh MongoDB database. Does nothing if
// products already exist.
func main() {
	cfg := config.Load()

	if cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI is required")
	}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Disconnect()

	ctx := context.Background()
	products := store.NewMongoProductStore(db.Products())

	count, err := products.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count products: %v", err)
	}
	if count > 0 {
		log.Printf("Catalog already has %d products, nothing to do", count)
		return
	}

	for _, p := range store.SampleProducts() {
		_, err := products.Create(ctx, models.CreateProductRequest{
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			Category:    p.Category,
			Stock:       p.Stock,
			Featured:    p.Featured,
		})
		if err != nil {
			log.Fatalf("Failed to create %s: %v", p.Name, err)
		}
		log.Printf("✅ Added %s", p.Name)
	}

	log.Println("Sample products added to database")
}
