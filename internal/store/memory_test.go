package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteshop/storefront/internal/models"
)

func newTestStore(t *testing.T, products ...models.Product) *MemoryProductStore {
	t.Helper()
	s := NewMemoryProductStore()
	s.Seed(products)
	return s
}

func TestReserveStock(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements stock and returns snapshot", func(t *testing.T) {
		s := newTestStore(t, models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50})

		snapshot, err := s.ReserveStock(ctx, "1", 3)
		require.NoError(t, err)
		assert.Equal(t, "Headphones", snapshot.Name)
		assert.Equal(t, 99.99, snapshot.Price)

		p, err := s.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, 47, p.Stock)
	})

	t.Run("insufficient stock leaves stock unchanged", func(t *testing.T) {
		s := newTestStore(t, models.Product{ID: "2", Name: "Speaker", Price: 79.99, Stock: 5})

		_, err := s.ReserveStock(ctx, "2", 10)

		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Speaker", stockErr.ProductName)
		assert.Equal(t, 5, stockErr.Available)

		p, err := s.Get(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, 5, p.Stock)
	})

	t.Run("unknown product", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.ReserveStock(ctx, "missing", 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("deactivated product behaves as missing", func(t *testing.T) {
		s := newTestStore(t, models.Product{ID: "3", Name: "Watch", Stock: 10})
		require.NoError(t, s.Deactivate(ctx, "3"))

		_, err := s.ReserveStock(ctx, "3", 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("exact stock reserves to zero", func(t *testing.T) {
		s := newTestStore(t, models.Product{ID: "4", Name: "Mouse", Stock: 7})

		_, err := s.ReserveStock(ctx, "4", 7)
		require.NoError(t, err)

		p, err := s.Get(ctx, "4")
		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock)
	})
}

// Two placements must never both pass the stock check before either
// decrements. With 100 competing reservations against a stock of 50,
// exactly 50 may win and stock must end at zero, never below.
func TestReserveStock_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, models.Product{ID: "1", Name: "Headphones", Stock: 50})

	var wg sync.WaitGroup
	var successes atomic.Int64
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ReserveStock(ctx, "1", 1); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), successes.Load())
	p, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestReleaseStock(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, models.Product{ID: "1", Name: "Laptop", Stock: 2})

	require.NoError(t, s.ReleaseStock(ctx, "1", 3))

	p, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)

	err = s.ReleaseStock(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, models.Product{ID: "1", Name: "Laptop", Category: "Electronics", Stock: 2})

	require.NoError(t, s.Deactivate(ctx, "1"))

	_, err := s.Get(ctx, "1")
	assert.ErrorIs(t, err, ErrProductNotFound)

	list, err := s.List(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list.Products)

	// The record itself survives for order line references.
	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = s.Deactivate(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	featured := true
	min, max := 50.0, 500.0

	s := newTestStore(t,
		models.Product{ID: "1", Name: "Wireless Headphones", Description: "noise cancellation", Category: "Electronics", Price: 99.99, Featured: true},
		models.Product{ID: "2", Name: "Running Shoes", Category: "Sports", Price: 59.99, Tags: []string{"outdoor"}},
		models.Product{ID: "3", Name: "Laptop", Category: "Electronics", Price: 1299.99},
	)

	tests := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"category", ProductFilter{Category: "Electronics", SortBy: "price"}, []string{"Wireless Headphones", "Laptop"}},
		{"featured", ProductFilter{Featured: &featured}, []string{"Wireless Headphones"}},
		{"price range", ProductFilter{MinPrice: &min, MaxPrice: &max, SortBy: "price"}, []string{"Running Shoes", "Wireless Headphones"}},
		{"search name", ProductFilter{Search: "headphones"}, []string{"Wireless Headphones"}},
		{"search description", ProductFilter{Search: "noise"}, []string{"Wireless Headphones"}},
		{"search tags", ProductFilter{Search: "outdoor"}, []string{"Running Shoes"}},
		{"no match", ProductFilter{Category: "Books"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := s.List(ctx, tt.filter)
			require.NoError(t, err)

			var names []string
			for _, p := range list.Products {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProductStore()

	var seed []models.Product
	for i := 0; i < 25; i++ {
		seed = append(seed, models.Product{Name: "Item", Category: "Home", Price: 10})
	}
	s.Seed(seed)

	list, err := s.List(ctx, ProductFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list.Products, 5)
	assert.Equal(t, int64(25), list.Total)
	assert.Equal(t, 3, list.TotalPages)
	assert.Equal(t, 3, list.CurrentPage)

	// A page past the end is empty, not an error.
	list, err = s.List(ctx, ProductFilter{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list.Products)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, models.Product{ID: "1", Name: "Laptop", Price: 1299.99, Stock: 20})

	name := "Gaming Laptop"
	price := 1499.99
	updated, err := s.Update(ctx, "1", models.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Gaming Laptop", updated.Name)
	assert.Equal(t, 1499.99, updated.Price)
	assert.Equal(t, 20, updated.Stock, "unset fields stay untouched")

	_, err = s.Update(ctx, "missing", models.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t,
		models.Product{Name: "A", Category: "Electronics"},
		models.Product{Name: "B", Category: "Sports"},
		models.Product{ID: "gone", Name: "C", Category: "Books"},
	)
	require.NoError(t, s.Deactivate(ctx, "gone"))

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Sports"}, categories)
}

func TestGetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, models.Product{ID: "1", Name: "Laptop", Stock: 20})

	first, err := s.Get(ctx, "1")
	require.NoError(t, err)

	// Mutating the returned copy must not leak into the store.
	first.Stock = 0

	second, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 20, second.Stock)
}
