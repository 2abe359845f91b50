package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/eliteshop/storefront/internal/models"
	"github.com/eliteshop/storefront/internal/store"
)

// FulfillmentConsumer picks up order.created events and moves pending
// orders into processing. Stock is already reserved synchronously at
// placement time, so this consumer only drives the status lifecycle.
type FulfillmentConsumer struct {
	orders store.OrderStore
}

func NewFulfillmentConsumer(orders store.OrderStore) *FulfillmentConsumer {
	return &FulfillmentConsumer{orders: orders}
}

// Run processes deliveries until the channel closes.
func (c *FulfillmentConsumer) Run(messages <-chan amqp.Delivery) {
	for msg := range messages {
		c.handle(context.Background(), msg)
	}
}

func (c *FulfillmentConsumer) handle(ctx context.Context, msg amqp.Delivery) {
	var event models.OrderCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("❌ Failed to parse event: %v", err)
		msg.Nack(false, false) // Don't requeue bad messages
		return
	}

	order, err := c.orders.Get(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			log.Printf("❌ Order %s no longer exists, dropping event", event.OrderID)
			msg.Nack(false, false)
			return
		}
		log.Printf("⚠️ Failed to load order %s: %v", event.OrderID, err)
		msg.Nack(false, true) // Requeue for retry
		return
	}

	// Cancelled (or otherwise advanced) before we got here; nothing to do.
	if order.Status != models.StatusPending {
		msg.Ack(false)
		return
	}

	if _, err := c.orders.UpdateStatus(ctx, event.OrderID, models.StatusProcessing); err != nil {
		log.Printf("⚠️ Failed to advance order %s: %v", event.OrderID, err)
		msg.Nack(false, true)
		return
	}

	log.Printf("✅ Order %s moved to processing", order.OrderNumber)
	msg.Ack(false)
}
