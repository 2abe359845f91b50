package store

import (
	"context"
	"fmt"
	"log"

	"github.com/eliteshop/storefront/internal/models"
)

// Cache is the slice of the Redis cache the decorator needs; kept small so
// tests can drop in a fake.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// CachedProductStore is a cache-aside decorator over a ProductStore.
// Single-product reads and the category list are cached; every write and
// stock movement invalidates.
type CachedProductStore struct {
	inner ProductStore
	cache Cache
}

func NewCachedProductStore(inner ProductStore, cache Cache) *CachedProductStore {
	return &CachedProductStore{inner: inner, cache: cache}
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

const categoriesKey = "products:categories"

// List always hits the inner store; listing results vary by filter and are
// not worth keying individually.
func (s *CachedProductStore) List(ctx context.Context, filter ProductFilter) (*models.ProductList, error) {
	return s.inner.List(ctx, filter)
}

func (s *CachedProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	key := productKey(id)

	var cached models.Product
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	p, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, p); err != nil {
		log.Printf("⚠️ Failed to cache product %s: %v", id, err)
	}
	return p, nil
}

func (s *CachedProductStore) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	p, err := s.inner.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, categoriesKey)
	return p, nil
}

func (s *CachedProductStore) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	p, err := s.inner.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, productKey(id), categoriesKey)
	return p, nil
}

func (s *CachedProductStore) Deactivate(ctx context.Context, id string) error {
	if err := s.inner.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, productKey(id), categoriesKey)
	return nil
}

func (s *CachedProductStore) Categories(ctx context.Context) ([]string, error) {
	var cached []string
	if err := s.cache.Get(ctx, categoriesKey, &cached); err == nil {
		return cached, nil
	}

	categories, err := s.inner.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, categoriesKey, categories); err != nil {
		log.Printf("⚠️ Failed to cache categories: %v", err)
	}
	return categories, nil
}

func (s *CachedProductStore) ReserveStock(ctx context.Context, id string, quantity int) (*LineSnapshot, error) {
	snapshot, err := s.inner.ReserveStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, productKey(id))
	return snapshot, nil
}

func (s *CachedProductStore) ReleaseStock(ctx context.Context, id string, quantity int) error {
	if err := s.inner.ReleaseStock(ctx, id, quantity); err != nil {
		return err
	}
	s.invalidate(ctx, productKey(id))
	return nil
}

func (s *CachedProductStore) Count(ctx context.Context) (int64, error) {
	return s.inner.Count(ctx)
}

func (s *CachedProductStore) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("⚠️ Failed to invalidate cache: %v", err)
	}
}
