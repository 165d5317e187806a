package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
)

// MonthRevenue is one month's bucket in a revenue series
type MonthRevenue struct {
	Month   string  `json:"month"` // "2026-08"
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// ProductSales is one entry of a top-N products list
type ProductSales struct {
	ProductID uuid.UUID            `json:"product_id"`
	Name      domain.LocalizedText `json:"name"`
	Quantity  int                  `json:"quantity"`
	Revenue   float64              `json:"revenue"`
}

// StoreAnalytics summarizes store-wide sales for the admin dashboard
type StoreAnalytics struct {
	TotalRevenue      float64        `json:"total_revenue"`
	OrderCount        int            `json:"order_count"`
	AverageOrderValue float64        `json:"average_order_value"`
	MonthlyRevenue    []MonthRevenue `json:"monthly_revenue"`
	TopProducts       []ProductSales `json:"top_products"`
}

// UserAnalytics summarizes one user's purchase history
type UserAnalytics struct {
	TotalSpent     float64        `json:"total_spent"`
	OrderCount     int            `json:"order_count"`
	MonthlyRevenue []MonthRevenue `json:"monthly_revenue"`
}

// analyticsService aggregates fetched order rows in-process: sums,
// month buckets and top-N lists. Cancelled orders are excluded.
type analyticsService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repos *repository.Repositories, logger *zap.Logger) *analyticsService {
	return &analyticsService{
		repos:  repos,
		logger: logger,
	}
}

// StoreOverview computes store-wide totals, a trailing monthly revenue
// series and the top-N products by quantity sold.
func (s *analyticsService) StoreOverview(ctx context.Context, months, topN int) (*StoreAnalytics, error) {
	if months < 1 {
		months = 6
	}
	if topN < 1 {
		topN = 5
	}
	since := monthStart(time.Now().UTC()).AddDate(0, -(months - 1), 0)

	orders, err := s.repos.Order.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.Order.ListItemsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	counted := countedOrders(orders)

	overview := &StoreAnalytics{
		MonthlyRevenue: monthBuckets(counted, since, months),
	}
	for _, order := range counted {
		overview.TotalRevenue += order.Total
		overview.OrderCount++
	}
	if overview.OrderCount > 0 {
		overview.AverageOrderValue = overview.TotalRevenue / float64(overview.OrderCount)
	}

	countedIDs := make(map[uuid.UUID]bool, len(counted))
	for _, order := range counted {
		countedIDs[order.ID] = true
	}

	byProduct := make(map[uuid.UUID]*ProductSales)
	for _, item := range items {
		if !countedIDs[item.OrderID] {
			continue
		}
		sales, ok := byProduct[item.ProductID]
		if !ok {
			sales = &ProductSales{ProductID: item.ProductID, Name: item.Name}
			byProduct[item.ProductID] = sales
		}
		sales.Quantity += item.Quantity
		sales.Revenue += item.UnitPrice * float64(item.Quantity)
	}

	top := make([]ProductSales, 0, len(byProduct))
	for _, sales := range byProduct {
		top = append(top, *sales)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Revenue > top[j].Revenue
	})
	if len(top) > topN {
		top = top[:topN]
	}
	overview.TopProducts = top

	return overview, nil
}

// UserOverview computes one user's spend totals and monthly series.
func (s *analyticsService) UserOverview(ctx context.Context, userID uuid.UUID, months int) (*UserAnalytics, error) {
	if months < 1 {
		months = 6
	}
	since := monthStart(time.Now().UTC()).AddDate(0, -(months - 1), 0)

	orders, err := s.repos.Order.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	mine := make([]*domain.Order, 0)
	for _, order := range countedOrders(orders) {
		if order.UserID == userID {
			mine = append(mine, order)
		}
	}

	overview := &UserAnalytics{
		MonthlyRevenue: monthBuckets(mine, since, months),
	}
	for _, order := range mine {
		overview.TotalSpent += order.Total
		overview.OrderCount++
	}

	return overview, nil
}

// countedOrders filters out cancelled orders, which carry no revenue.
func countedOrders(orders []*domain.Order) []*domain.Order {
	counted := make([]*domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status != domain.OrderStatusCancelled {
			counted = append(counted, order)
		}
	}
	return counted
}

// monthBuckets groups orders into one bucket per calendar month, oldest
// first, with empty months present as zero buckets.
func monthBuckets(orders []*domain.Order, since time.Time, months int) []MonthRevenue {
	buckets := make([]MonthRevenue, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		month := since.AddDate(0, i, 0).Format("2006-01")
		buckets[i] = MonthRevenue{Month: month}
		index[month] = i
	}

	for _, order := range orders {
		month := order.CreatedAt.UTC().Format("2006-01")
		i, ok := index[month]
		if !ok {
			continue
		}
		buckets[i].Revenue += order.Total
		buckets[i].Orders++
	}

	return buckets
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
