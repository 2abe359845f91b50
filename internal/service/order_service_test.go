package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteshop/storefront/internal/models"
	"github.com/eliteshop/storefront/internal/store"
)

type recordingPublisher struct {
	created   []*models.Order
	cancelled []*models.Order
}

func (p *recordingPublisher) OrderCreated(order *models.Order) error {
	p.created = append(p.created, order)
	return nil
}

func (p *recordingPublisher) OrderCancelled(order *models.Order) error {
	p.cancelled = append(p.cancelled, order)
	return nil
}

type fixture struct {
	products *store.MemoryProductStore
	orders   *store.MemoryOrderStore
	pub      *recordingPublisher
	svc      *OrderService
}

func newFixture(t *testing.T, products ...models.Product) *fixture {
	t.Helper()
	f := &fixture{
		products: store.NewMemoryProductStore(),
		orders:   store.NewMemoryOrderStore(),
		pub:      &recordingPublisher{},
	}
	f.products.Seed(products)
	f.svc = NewOrderService(f.products, f.orders, f.pub)
	return f
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.Get(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50})

	order, err := f.svc.PlaceOrder(ctx, models.CreateOrderRequest{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Products:  []models.CreateOrderLineRequest{{ProductID: "1", Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.InDelta(t, 299.97, order.Total, 0.001)
	assert.Equal(t, 47, f.stock(t, "1"))
	assert.Equal(t, "credit_card", order.PaymentMethod)
	assert.Regexp(t, `^ORD-\d+-[A-Z0-9]{5}$`, order.OrderNumber)

	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Headphones", order.Lines[0].Name)
	assert.Equal(t, 99.99, order.Lines[0].Price)
	assert.Equal(t, 3, order.Lines[0].Quantity)

	// Persisted, and the created event went out.
	stored, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, stored.Total)
	require.Len(t, f.pub.created, 1)
	assert.Equal(t, order.ID, f.pub.created[0].ID)
}

func TestPlaceOrder_TotalMatchesLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50},
		models.Product{ID: "2", Name: "Speaker", Price: 79.99, Stock: 60},
	)

	order, err := f.svc.PlaceOrder(ctx, models.CreateOrderRequest{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Products: []models.CreateOrderLineRequest{
			{ProductID: "1", Quantity: 2},
			{ProductID: "2", Quantity: 5},
		},
	})
	require.NoError(t, err)

	var sum float64
	for _, line := range order.Lines {
		sum += line.Price * float64(line.Quantity)
	}
	assert.Equal(t, sum, order.Total)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.Product{ID: "2", Name: "Speaker", Price: 79.99, Stock: 5})

	_, err := f.svc.PlaceOrder(ctx, models.CreateOrderRequest{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Products:  []models.CreateOrderLineRequest{{ProductID: "2", Quantity: 10}},
	})

	var stockErr *store.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Contains(t, err.Error(), "Available: 5")

	// Stock untouched, nothing persisted, no event.
	assert.Equal(t, 5, f.stock(t, "2"))
	count, err := f.orders.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, f.pub.created)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.PlaceOrder(ctx, models.CreateOrderRequest{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Products:  []models.CreateOrderLineRequest{{ProductID: "nope", Quantity: 1}},
	})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.Contains(t, err.Error(), "nope")
}

func TestPlaceOrder_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50},
		models.Product{ID: "2", Name: "Speaker", Price: 79.99, Stock: 5},
	)

	// First line succeeds, second fails on stock; the first reservation
	// must be released again.
	_, err := f.svc.PlaceOrder(ctx, models.CreateOrderRequest{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Products: []models.CreateOrderLineRequest{
			{ProductID: "1", Quantity: 3},
			{ProductID: "2", Quantity: 10},
		},
	})
	require.Error(t, err)

	assert.Equal(t, 50, f.stock(t, "1"))
	assert.Equal(t, 5, f.stock(t, "2"))

	count, err := f.orders.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPlaceOrder_SnapshotSurvivesPriceChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50})

	order, err := f.svc.PlaceOrder(ctx, models.CreateOrderRequest{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Products:  []models.CreateOrderLineRequest{{ProductID: "1", Quantity: 1}},
	})
	require.NoError(t, err)

	newPrice := 149.99
	newName := "Premium Headphones"
	_, err = f.products.Update(ctx, "1", models.UpdateProductRequest{Price: &newPrice, Name: &newName})
	require.NoError(t, err)

	stored, err := f.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Headphones", stored.Lines[0].Name)
	assert.Equal(t, 99.99, stored.Lines[0].Price)
	assert.InDelta(t, 99.99, stored.Total, 0.001)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50},
		models.Product{ID: "2", Name: "Speaker", Price: 79.99, Stock: 60},
	)

	order, err := f.svc.PlaceOrder(ctx, models.CreateOrderRequest{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Products: []models.CreateOrderLineRequest{
			{ProductID: "1", Quantity: 3},
			{ProductID: "2", Quantity: 4},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 47, f.stock(t, "1"))
	require.Equal(t, 56, f.stock(t, "2"))

	cancelled, err := f.svc.Cancel(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, 50, f.stock(t, "1"))
	assert.Equal(t, 60, f.stock(t, "2"))
	require.Len(t, f.pub.cancelled, 1)
	assert.Equal(t, order.ID, f.pub.cancelled[0].ID)
}

func TestCancel_NonPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50})

	order, err := f.svc.PlaceOrder(ctx, models.CreateOrderRequest{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Products:  []models.CreateOrderLineRequest{{ProductID: "1", Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, order.ID, models.StatusShipped)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, order.ID)
	assert.ErrorIs(t, err, store.ErrNotPending)

	// Nothing mutated.
	assert.Equal(t, 47, f.stock(t, "1"))
	stored, err := f.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)
	assert.Empty(t, f.pub.cancelled)
}

func TestCancel_SkipsVanishedProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50})

	// An order whose second line references a product the store no longer
	// knows about. Cancellation restores what it can and skips the rest.
	now := time.Now()
	order := &models.Order{
		ID:          uuid.NewString(),
		OrderNumber: models.NewOrderNumber(),
		UserID:      "user-1",
		Status:      models.StatusPending,
		Lines: []models.OrderLine{
			{ProductID: "1", Name: "Headphones", Price: 99.99, Quantity: 2},
			{ProductID: "vanished", Name: "Ghost", Price: 9.99, Quantity: 1},
		},
		Total:     209.97,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.orders.Create(ctx, order))

	cancelled, err := f.svc.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, 52, f.stock(t, "1"))
}

func TestCancel_UnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50})

	order, err := f.svc.PlaceOrder(ctx, models.CreateOrderRequest{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Products:  []models.CreateOrderLineRequest{{ProductID: "1", Quantity: 1}},
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, order.ID, models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)

	// Only enumeration membership is checked; any member may follow any
	// other, including backwards.
	updated, err = f.svc.UpdateStatus(ctx, order.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, order.ID, models.Status("refunded"))
	assert.Error(t, err)

	_, err = f.svc.UpdateStatus(ctx, "missing", models.StatusShipped)
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}

func TestListByUser_NewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.Product{ID: "1", Name: "Headphones", Price: 99.99, Stock: 50})

	var ids []string
	for i := 0; i < 3; i++ {
		now := time.Now().Add(time.Duration(i) * time.Minute)
		order := &models.Order{
			ID:          uuid.NewString(),
			OrderNumber: models.NewOrderNumber(),
			UserID:      "user-1",
			Status:      models.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		require.NoError(t, f.orders.Create(ctx, order))
		ids = append(ids, order.ID)
	}

	list, err := f.svc.ListByUser(ctx, "user-1", 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Orders, 3)
	assert.Equal(t, ids[2], list.Orders[0].ID)
	assert.Equal(t, ids[0], list.Orders[2].ID)

	// Other users see nothing.
	other, err := f.svc.ListByUser(ctx, "user-2", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, other.Orders)
}
