package publisher

import (
	"encoding/json"
	"fmt"

	"github.com/eliteshop/storefront/internal/messaging"
	"github.com/eliteshop/storefront/internal/models"
)

const (
	OrderCreatedQueue   = "order.created"
	OrderCancelledQueue = "order.cancelled"
)

// OrderPublisher emits order lifecycle events for downstream consumers
// (fulfillment worker, notification systems). Publish failures are the
// caller's to log; the order itself is already persisted.
type OrderPublisher struct {
	mq *messaging.RabbitMQ
}

func NewOrderPublisher(mq *messaging.RabbitMQ) (*OrderPublisher, error) {
	for _, queue := range []string{OrderCreatedQueue, OrderCancelledQueue} {
		if err := mq.DeclareQueue(queue); err != nil {
			return nil, err
		}
	}
	return &OrderPublisher{mq: mq}, nil
}

// OrderCreated publishes an order.created event.
func (p *OrderPublisher) OrderCreated(order *models.Order) error {
	event := models.OrderCreatedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Total:       order.Total,
		Lines:       lineEvents(order),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.mq.Publish(OrderCreatedQueue, data)
}

// OrderCancelled publishes an order.cancelled event.
func (p *OrderPublisher) OrderCancelled(order *models.Order) error {
	event := models.OrderCancelledEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Lines:       lineEvents(order),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.mq.Publish(OrderCancelledQueue, data)
}

func lineEvents(order *models.Order) []models.OrderLineEvent {
	events := make([]models.OrderLineEvent, 0, len(order.Lines))
	for _, line := range order.Lines {
		events = append(events, models.OrderLineEvent{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return events
}
