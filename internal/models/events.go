package models

// OrderCreatedEvent is published after an order is persisted.
type OrderCreatedEvent struct {
	OrderID     string           `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	UserID      string           `json:"user_id"`
	Total       float64          `json:"total"`
	Lines       []OrderLineEvent `json:"lines"`
}

// OrderCancelledEvent is published after a pending order is cancelled and
// its stock released.
type OrderCancelledEvent struct {
	OrderID     string           `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	Lines       []OrderLineEvent `json:"lines"`
}

type OrderLineEvent struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
