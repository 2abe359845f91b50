package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eliteshop/storefront/internal/models"
)

// MemoryProductStore is the volatile fallback backend used when MongoDB is
// not configured or unreachable. All mutation happens under one mutex, so
// ReserveStock is naturally a single critical section.
type MemoryProductStore struct {
	mu       sync.Mutex
	products map[string]*models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: make(map[string]*models.Product)}
}

// Seed inserts products directly, keeping whatever IDs they carry. Used by
// the demo catalog and by tests.
func (s *MemoryProductStore) Seed(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range products {
		p := products[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now()
		}
		p.IsActive = true
		s.products[p.ID] = &p
	}
}

func (s *MemoryProductStore) List(ctx context.Context, filter ProductFilter) (*models.ProductList, error) {
	filter.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.Product{}
	for _, p := range s.products {
		if !p.IsActive || !matchesFilter(p, filter) {
			continue
		}
		matched = append(matched, *p)
	}

	sortProducts(matched, filter.SortBy, filter.SortDesc)

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return &models.ProductList{
		Products:    matched[start:end],
		Total:       total,
		TotalPages:  totalPages(total, filter.Limit),
		CurrentPage: filter.Page,
	}, nil
}

func (s *MemoryProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok || !p.IsActive {
		return nil, ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *MemoryProductStore) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	now := time.Now()
	p := &models.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Stock:         req.Stock,
		Featured:      req.Featured,
		Tags:          req.Tags,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p

	copied := *p
	return &copied, nil
}

func (s *MemoryProductStore) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		p.OriginalPrice = *req.OriginalPrice
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.Tags != nil {
		p.Tags = req.Tags
	}
	p.UpdatedAt = time.Now()

	copied := *p
	return &copied, nil
}

// Deactivate is the soft delete: the product stays on disk so order line
// snapshots keep a valid reference, but reads and reservations treat it as
// missing.
func (s *MemoryProductStore) Deactivate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return ErrProductNotFound
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryProductStore) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.products {
		if p.IsActive && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *MemoryProductStore) ReserveStock(ctx context.Context, id string, quantity int) (*LineSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok || !p.IsActive {
		return nil, ErrProductNotFound
	}
	if p.Stock < quantity {
		return nil, &InsufficientStockError{ProductName: p.Name, Available: p.Stock}
	}

	snapshot := &LineSnapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	return snapshot, nil
}

func (s *MemoryProductStore) ReleaseStock(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return ErrProductNotFound
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryProductStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.products)), nil
}

func matchesFilter(p *models.Product, f ProductFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!tagsContain(p.Tags, needle) {
			return false
		}
	}
	return true
}

func tagsContain(tags []string, needle string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []models.Product, sortBy string, desc bool) {
	less := func(a, b models.Product) bool {
		switch sortBy {
		case "price":
			return a.Price < b.Price
		case "name":
			return a.Name < b.Name
		case "rating":
			return a.Rating < b.Rating
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}
