package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
)

// OrderFilter narrows an order listing. Zero values mean "no filter".
type OrderFilter struct {
	Search string // matches order number, customer name or email
	Status models.OrderStatus
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (f *OrderFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByID loads an order with its line items and their products.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// NumberExists reports whether an order number is already taken.
func (r *OrderRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("number = ?", number).Count(&n).Error
	return n > 0, err
}

// List returns a filtered page of orders, newest first, with items preloaded.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	f.Normalize()

	q := r.db.WithContext(ctx).Model(&models.Order{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("number LIKE ? OR customer_name LIKE ? OR customer_email LIKE ?", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&orders).Error
	return orders, total, err
}

// Recent returns the newest orders for the dashboard.
func (r *OrderRepository) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
