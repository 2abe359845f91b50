package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/eliteshop/storefront/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	// ErrNotPending is returned when cancelling an order that has already
	// left the pending state.
	ErrNotPending = errors.New("only pending orders can be cancelled")
)

// InsufficientStockError reports a reservation that asked for more than the
// product currently has.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d", e.ProductName, e.Available)
}

// LineSnapshot is the product state captured at reservation time. Order
// lines are built from snapshots, never from later catalog reads.
type LineSnapshot struct {
	ProductID string
	Name      string
	Price     float64
	ImageURL  string
}

// ProductFilter narrows and paginates product listings.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Featured *bool
	SortBy   string // createdAt | price | name | rating
	SortDesc bool
	Page     int
	Limit    int
}

// Normalize applies the listing defaults.
func (f *ProductFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 12
	}
	if f.SortBy == "" {
		f.SortBy = "createdAt"
	}
}

// ProductStore is the catalog source of truth. Get only returns active
// products; deactivated ones behave as missing everywhere except the
// snapshots already captured on orders.
type ProductStore interface {
	List(ctx context.Context, filter ProductFilter) (*models.ProductList, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error)
	Deactivate(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)

	// ReserveStock atomically checks and decrements stock for one product,
	// returning the pre-reservation snapshot. There is no separate
	// check-then-decrement step for callers to race through.
	ReserveStock(ctx context.Context, id string, quantity int) (*LineSnapshot, error)
	// ReleaseStock puts quantity back. No reservation ledger is kept, so
	// the increment is unconditional.
	ReleaseStock(ctx context.Context, id string, quantity int) error

	Count(ctx context.Context) (int64, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string, page, limit int) (*models.OrderList, error)
	List(ctx context.Context, status models.Status, page, limit int) (*models.OrderList, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Order, error)
	Count(ctx context.Context) (int64, error)
}
