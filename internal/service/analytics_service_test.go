package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
)

func seedOrder(repo *mockOrderRepo, userID uuid.UUID, status domain.OrderStatus, total float64, createdAt time.Time, items ...*domain.OrderItem) *domain.Order {
	order := &domain.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    status,
		Total:     total,
		Currency:  "GEL",
		CreatedAt: createdAt,
	}
	repo.orders = append(repo.orders, order)
	for _, item := range items {
		item.OrderID = order.ID
		repo.items = append(repo.items, item)
	}
	return order
}

func TestStoreOverview_TotalsAndAverage(t *testing.T) {
	orders := &mockOrderRepo{}
	now := time.Now().UTC()
	seedOrder(orders, uuid.New(), domain.OrderStatusConfirmed, 300, now)
	seedOrder(orders, uuid.New(), domain.OrderStatusDelivered, 500, now)

	svc := NewAnalyticsService(testRepos(nil, orders, nil, nil), zap.NewNop())

	overview, err := svc.StoreOverview(context.Background(), 6, 5)
	require.NoError(t, err)
	assert.InDelta(t, 800, overview.TotalRevenue, 0.001)
	assert.Equal(t, 2, overview.OrderCount)
	assert.InDelta(t, 400, overview.AverageOrderValue, 0.001)
}

func TestStoreOverview_ExcludesCancelledOrders(t *testing.T) {
	orders := &mockOrderRepo{}
	now := time.Now().UTC()
	productID := uuid.New()
	seedOrder(orders, uuid.New(), domain.OrderStatusConfirmed, 300, now, &domain.OrderItem{
		ProductID: productID, UnitPrice: 100, Quantity: 3,
	})
	seedOrder(orders, uuid.New(), domain.OrderStatusCancelled, 900, now, &domain.OrderItem{
		ProductID: productID, UnitPrice: 100, Quantity: 9,
	})

	svc := NewAnalyticsService(testRepos(nil, orders, nil, nil), zap.NewNop())

	overview, err := svc.StoreOverview(context.Background(), 6, 5)
	require.NoError(t, err)
	assert.InDelta(t, 300, overview.TotalRevenue, 0.001)
	assert.Equal(t, 1, overview.OrderCount)

	// Items of the cancelled order do not count toward top products.
	require.Len(t, overview.TopProducts, 1)
	assert.Equal(t, 3, overview.TopProducts[0].Quantity)
	assert.InDelta(t, 300, overview.TopProducts[0].Revenue, 0.001)
}

func TestStoreOverview_MonthBucketsIncludeEmptyMonths(t *testing.T) {
	orders := &mockOrderRepo{}
	now := time.Now().UTC()
	seedOrder(orders, uuid.New(), domain.OrderStatusConfirmed, 250, now)

	svc := NewAnalyticsService(testRepos(nil, orders, nil, nil), zap.NewNop())

	overview, err := svc.StoreOverview(context.Background(), 3, 5)
	require.NoError(t, err)
	require.Len(t, overview.MonthlyRevenue, 3)

	current := overview.MonthlyRevenue[2]
	assert.Equal(t, now.Format("2006-01"), current.Month)
	assert.InDelta(t, 250, current.Revenue, 0.001)
	assert.Equal(t, 1, current.Orders)

	for _, bucket := range overview.MonthlyRevenue[:2] {
		assert.Zero(t, bucket.Revenue)
		assert.Zero(t, bucket.Orders)
	}
}

func TestStoreOverview_TopProductsRankedAndTruncated(t *testing.T) {
	orders := &mockOrderRepo{}
	now := time.Now().UTC()
	first, second, third := uuid.New(), uuid.New(), uuid.New()
	seedOrder(orders, uuid.New(), domain.OrderStatusConfirmed, 1000, now,
		&domain.OrderItem{ProductID: first, UnitPrice: 50, Quantity: 8},
		&domain.OrderItem{ProductID: second, UnitPrice: 100, Quantity: 4},
		&domain.OrderItem{ProductID: third, UnitPrice: 100, Quantity: 2},
	)

	svc := NewAnalyticsService(testRepos(nil, orders, nil, nil), zap.NewNop())

	overview, err := svc.StoreOverview(context.Background(), 6, 2)
	require.NoError(t, err)
	require.Len(t, overview.TopProducts, 2)
	assert.Equal(t, first, overview.TopProducts[0].ProductID)
	assert.Equal(t, second, overview.TopProducts[1].ProductID)
}

func TestUserOverview_FiltersByUser(t *testing.T) {
	orders := &mockOrderRepo{}
	now := time.Now().UTC()
	userID := uuid.New()
	seedOrder(orders, userID, domain.OrderStatusConfirmed, 300, now)
	seedOrder(orders, userID, domain.OrderStatusCancelled, 900, now)
	seedOrder(orders, uuid.New(), domain.OrderStatusConfirmed, 450, now)

	svc := NewAnalyticsService(testRepos(nil, orders, nil, nil), zap.NewNop())

	overview, err := svc.UserOverview(context.Background(), userID, 6)
	require.NoError(t, err)
	assert.InDelta(t, 300, overview.TotalSpent, 0.001)
	assert.Equal(t, 1, overview.OrderCount)
	require.Len(t, overview.MonthlyRevenue, 6)
}
