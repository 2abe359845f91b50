package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/eliteshop/storefront/internal/models"
	"github.com/eliteshop/storefront/internal/store"
)

// EventPublisher is the slice of the order publisher the workflow needs.
type EventPublisher interface {
	OrderCreated(order *models.Order) error
	OrderCancelled(order *models.Order) error
}

// OrderService owns the order lifecycle: placement with stock reservation,
// status updates, and cancellation with compensating stock release. It is
// the only caller of ReserveStock/ReleaseStock.
type OrderService struct {
	products  store.ProductStore
	orders    store.OrderStore
	publisher EventPublisher // nil when messaging is not configured
}

func NewOrderService(products store.ProductStore, orders store.OrderStore, publisher EventPublisher) *OrderService {
	return &OrderService{
		products:  products,
		orders:    orders,
		publisher: publisher,
	}
}

// PlaceOrder reserves stock line by line, captures name/price snapshots,
// computes the total server-side and persists the order as pending.
//
// Reservations are atomic per line. If any line fails, every line reserved
// so far is released before the error returns, so a failed placement never
// leaves stock decremented and never persists a partial order.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var (
		lines    []models.OrderLine
		reserved []models.OrderLine
		total    float64
	)

	for _, item := range req.Products {
		snapshot, err := s.products.ReserveStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.rollback(ctx, reserved)
			if errors.Is(err, store.ErrProductNotFound) {
				return nil, fmt.Errorf("product %s not found or inactive: %w", item.ProductID, err)
			}
			return nil, err
		}

		line := models.OrderLine{
			ProductID: snapshot.ProductID,
			Name:      snapshot.Name,
			Price:     snapshot.Price,
			Quantity:  item.Quantity,
			ImageURL:  snapshot.ImageURL,
		}
		lines = append(lines, line)
		reserved = append(reserved, line)
		total += snapshot.Price * float64(item.Quantity)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "credit_card"
	}

	now := time.Now()
	order := &models.Order{
		ID:              uuid.NewString(),
		OrderNumber:     models.NewOrderNumber(),
		UserID:          req.UserID,
		UserEmail:       req.UserEmail,
		Lines:           lines,
		Total:           total,
		Status:          models.StatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   paymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.rollback(ctx, reserved)
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.OrderCreated(order); err != nil {
			// The order is committed; the event is best-effort.
			log.Printf("⚠️ Failed to publish order.created for %s: %v", order.OrderNumber, err)
		}
	}

	log.Printf("✅ Order %s created with total $%.2f", order.OrderNumber, order.Total)
	return order, nil
}

// rollback releases stock for lines reserved before a placement failed.
func (s *OrderService) rollback(ctx context.Context, reserved []models.OrderLine) {
	for _, line := range reserved {
		if err := s.products.ReleaseStock(ctx, line.ProductID, line.Quantity); err != nil {
			log.Printf("⚠️ Failed to release %d x %s during rollback: %v", line.Quantity, line.ProductID, err)
		}
	}
}

// UpdateStatus sets the order status. Membership in the status enumeration
// is validated at the boundary; any member may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// Cancel reverses a pending order: every line's quantity goes back to its
// product (lines whose product has since disappeared are skipped) and the
// order moves to cancelled.
func (s *OrderService) Cancel(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != models.StatusPending {
		return nil, store.ErrNotPending
	}

	for _, line := range order.Lines {
		err := s.products.ReleaseStock(ctx, line.ProductID, line.Quantity)
		if err != nil && !errors.Is(err, store.ErrProductNotFound) {
			return nil, fmt.Errorf("failed to restore stock for %s: %w", line.ProductID, err)
		}
	}

	cancelled, err := s.orders.UpdateStatus(ctx, id, models.StatusCancelled)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.OrderCancelled(cancelled); err != nil {
			log.Printf("⚠️ Failed to publish order.cancelled for %s: %v", cancelled.OrderNumber, err)
		}
	}

	log.Printf("✅ Order %s cancelled, stock restored", cancelled.OrderNumber)
	return cancelled, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string, page, limit int) (*models.OrderList, error) {
	return s.orders.ListByUser(ctx, userID, page, limit)
}

func (s *OrderService) List(ctx context.Context, status models.Status, page, limit int) (*models.OrderList, error) {
	return s.orders.List(ctx, status, page, limit)
}
