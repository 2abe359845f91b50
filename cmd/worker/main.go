package main

import (
	"log"

	"github.com/eliteshop/storefront/internal/config"
	"github.com/eliteshop/storefront/internal/consumer"
	"github.com/eliteshop/storefront/internal/database"
	"github.com/eliteshop/storefront/internal/messaging"
	"github.com/eliteshop/storefront/internal/publisher"
	"github.com/eliteshop/storefront/internal/store"
)

// Fulfillment worker: consumes order.created and advances pending orders
// to processing. Runs against the shared MongoDB store, so both it and the
// API see the same orders.
func main() {
	cfg := config.Load()

	if cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI is required: the worker needs the shared order store")
	}
	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required")
	}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Disconnect()

	rabbitMQ, err := messaging.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitMQ.Close()

	if err := rabbitMQ.DeclareQueue(publisher.OrderCreatedQueue); err != nil {
		log.Fatalf("Failed to declare queue: %v", err)
	}

	messages, err := rabbitMQ.Consume(publisher.OrderCreatedQueue)
	if err != nil {
		log.Fatalf("Failed to consume messages: %v", err)
	}

	log.Println("🚀 Fulfillment worker started")

	fulfillment := consumer.NewFulfillmentConsumer(store.NewMongoOrderStore(db.Orders()))
	fulfillment.Run(messages)
}
