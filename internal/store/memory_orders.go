package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/eliteshop/storefront/internal/models"
)

// MemoryOrderStore keeps orders in process memory; companion fallback to
// MemoryProductStore.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]*models.Order)}
}

func (s *MemoryOrderStore) Create(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *order
	s.orders[order.ID] = &copied
	return nil
}

func (s *MemoryOrderStore) Get(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *MemoryOrderStore) ListByUser(ctx context.Context, userID string, page, limit int) (*models.OrderList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			matched = append(matched, *o)
		}
	}
	return paginateOrders(matched, page, limit), nil
}

func (s *MemoryOrderStore) List(ctx context.Context, status models.Status, page, limit int) (*models.OrderList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.Order{}
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			matched = append(matched, *o)
		}
	}
	return paginateOrders(matched, page, limit), nil
}

func (s *MemoryOrderStore) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()

	copied := *o
	return &copied, nil
}

func (s *MemoryOrderStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.orders)), nil
}

// paginateOrders sorts newest first and slices out the requested page.
func paginateOrders(orders []models.Order, page, limit int) *models.OrderList {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[j].CreatedAt.Before(orders[i].CreatedAt)
	})

	total := int64(len(orders))
	start := (page - 1) * limit
	if start > len(orders) {
		start = len(orders)
	}
	end := start + limit
	if end > len(orders) {
		end = len(orders)
	}

	return &models.OrderList{
		Orders:      orders[start:end],
		Total:       total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}
}
