package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/repositories"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/cache"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// DashboardStats is the headline figures block. Cancelled orders never
// count toward sales.
type DashboardStats struct {
	TotalSales       float64 `json:"total_sales"`
	TodaySales       float64 `json:"today_sales"`
	MonthSales       float64 `json:"month_sales"`
	TotalOrders      int64   `json:"total_orders"`
	PendingOrders    int64   `json:"pending_orders"`
	TotalProducts    int64   `json:"total_products"`
	CriticalProducts int64   `json:"critical_products"`
	OutOfStock       int64   `json:"out_of_stock"`
	TotalUsers       int64   `json:"total_users"`
}

// ChartPoint is one bucket of the sales chart.
type ChartPoint struct {
	Label  string  `json:"label"`
	Orders int64   `json:"orders"`
	Sales  float64 `json:"sales"`
}

// TopProduct is one row of the best-sellers table.
type TopProduct struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// StatusCount is one slice of the order status distribution.
type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// CategorySale is one row of revenue grouped by product category.
type CategorySale struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type DashboardService struct {
	db     *gorm.DB
	cache  *cache.Cache
	orders *repositories.OrderRepository
	logs   *repositories.StockLogRepository
}

func NewDashboardService(db *gorm.DB, c *cache.Cache) *DashboardService {
	return &DashboardService{
		db:     db,
		cache:  c,
		orders: repositories.NewOrderRepository(db),
		logs:   repositories.NewStockLogRepository(db),
	}
}

// Stats computes the headline block, cached for 30 seconds.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if s.cache.Get(ctx, statsCacheKey, &stats) {
		return &stats, nil
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	sums := []struct {
		dest  *float64
		since *time.Time
	}{
		{&stats.TotalSales, nil},
		{&stats.TodaySales, &todayStart},
		{&stats.MonthSales, &monthStart},
	}
	for _, sum := range sums {
		q := s.db.WithContext(ctx).Model(&models.Order{}).
			Where("status <> ?", models.OrderCancelled)
		if sum.since != nil {
			q = q.Where("created_at >= ?", *sum.since)
		}
		if err := q.Select("COALESCE(SUM(total), 0)").Scan(sum.dest).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalOrders, s.db.WithContext(ctx).Model(&models.Order{})},
		{&stats.PendingOrders, s.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", models.OrderPending)},
		{&stats.TotalProducts, s.db.WithContext(ctx).Model(&models.Product{})},
		{&stats.CriticalProducts, s.db.WithContext(ctx).Model(&models.Product{}).Where("stock <= critical_level")},
		{&stats.OutOfStock, s.db.WithContext(ctx).Model(&models.Product{}).Where("stock = 0")},
		{&stats.TotalUsers, s.db.WithContext(ctx).Model(&models.User{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}

	_ = s.cache.Set(ctx, statsCacheKey, &stats, statsCacheTTL)
	return &stats, nil
}

// SalesChart buckets non-cancelled orders into daily, weekly or monthly
// points. Bucketing runs in Go so the query stays dialect-neutral.
func (s *DashboardService) SalesChart(ctx context.Context, period string) ([]ChartPoint, error) {
	var since time.Time
	var bucket func(t time.Time) string

	now := time.Now()
	switch period {
	case "weekly":
		since = now.AddDate(0, 0, -7*12)
		bucket = func(t time.Time) string {
			year, week := t.ISOWeek()
			return time.Date(year, 1, 1, 0, 0, 0, 0, t.Location()).
				AddDate(0, 0, (week-1)*7).Format("2006-01-02")
		}
	case "monthly":
		since = now.AddDate(-1, 0, 0)
		bucket = func(t time.Time) string { return t.Format("2006-01") }
	case "", "daily":
		since = now.AddDate(0, 0, -30)
		bucket = func(t time.Time) string { return t.Format("2006-01-02") }
	default:
		return nil, apperr.Validation(map[string]string{"period": "must be one of daily, weekly, monthly"})
	}

	var rows []struct {
		CreatedAt time.Time
		Total     float64
	}
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status <> ? AND created_at >= ?", models.OrderCancelled, since).
		Order("created_at").
		Select("created_at, total").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var points []ChartPoint
	index := map[string]int{}
	for _, row := range rows {
		label := bucket(row.CreatedAt)
		i, ok := index[label]
		if !ok {
			i = len(points)
			index[label] = i
			points = append(points, ChartPoint{Label: label})
		}
		points[i].Orders++
		points[i].Sales += row.Total
	}
	return points, nil
}

// TopProducts lists the best sellers by quantity across non-cancelled orders.
func (s *DashboardService) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}

	var out []TopProduct
	err := s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id AS product_id, products.name AS name, "+
			"SUM(order_items.quantity) AS quantity, SUM(order_items.line_total) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.status <> ?", models.OrderCancelled).
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("order_items.product_id, products.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// StatusDistribution counts orders per status.
func (s *DashboardService) StatusDistribution(ctx context.Context) ([]StatusCount, error) {
	var out []StatusCount
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&out).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// CategorySales sums revenue per product category across non-cancelled orders.
func (s *DashboardService) CategorySales(ctx context.Context) ([]CategorySale, error) {
	var out []CategorySale
	err := s.db.WithContext(ctx).
		Table("order_items").
		Select("products.category AS category, SUM(order_items.line_total) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.status <> ?", models.OrderCancelled).
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("products.category").
		Order("revenue DESC").
		Scan(&out).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// RecentStockLogs returns the newest audit entries.
func (s *DashboardService) RecentStockLogs(ctx context.Context, limit int) ([]models.StockLog, error) {
	logs, err := s.logs.Recent(ctx, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return logs, nil
}

// RecentOrders returns the newest orders.
func (s *DashboardService) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	orders, err := s.orders.Recent(ctx, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return orders, nil
}
