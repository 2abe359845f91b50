package models

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

type Order struct {
	ID              string           `json:"id" bson:"_id"`
	OrderNumber     string           `json:"orderNumber" bson:"orderNumber"`
	UserID          string           `json:"userId" bson:"userId"`
	UserEmail       string           `json:"userEmail" bson:"userEmail"`
	Lines           []OrderLine      `json:"products" bson:"products"`
	Total           float64          `json:"total" bson:"total"`
	Status          Status           `json:"status" bson:"status"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty" bson:"shippingAddress,omitempty"`
	PaymentMethod   string           `json:"paymentMethod" bson:"paymentMethod"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// OrderLine holds the name/price snapshot captured when the order was
// placed. Later catalog edits never touch historical lines.
type OrderLine struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	ImageURL  string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

type ShippingAddress struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zipCode" bson:"zipCode"`
	Country string `json:"country" bson:"country"`
}

type CreateOrderRequest struct {
	UserID          string                   `json:"userId" binding:"required"`
	UserEmail       string                   `json:"userEmail" binding:"required,email"`
	Products        []CreateOrderLineRequest `json:"products" binding:"required,min=1,dive"`
	ShippingAddress *ShippingAddress         `json:"shippingAddress"`
	PaymentMethod   string                   `json:"paymentMethod" binding:"omitempty,oneof=credit_card debit_card paypal stripe"`
}

type CreateOrderLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderList is the paginated envelope for order listings.
type OrderList struct {
	Orders      []Order `json:"orders"`
	Total       int64   `json:"total"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
}

const orderNumberAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewOrderNumber builds the human-readable order reference, distinct from
// the primary identifier: ORD-<unix-ms>-<5 random uppercase chars>.
func NewOrderNumber() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), strings.ToUpper(string(suffix)))
}
