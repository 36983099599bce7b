package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
)

// StockLogFilter narrows the audit-trail listing.
type StockLogFilter struct {
	ProductID uint
	Reason    models.StockReason
	Page      int
	Limit     int
}

func (f *StockLogFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type StockLogRepository struct {
	db *gorm.DB
}

func NewStockLogRepository(db *gorm.DB) *StockLogRepository {
	return &StockLogRepository{db: db}
}

// List returns a page of audit entries, newest first.
func (r *StockLogRepository) List(ctx context.Context, f StockLogFilter) ([]models.StockLog, int64, error) {
	f.Normalize()

	q := r.db.WithContext(ctx).Model(&models.StockLog{})
	if f.ProductID != 0 {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.Reason != "" {
		q = q.Where("reason = ?", f.Reason)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.StockLog
	err := q.Preload("Product").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&logs).Error
	return logs, total, err
}

// Recent returns the newest entries for the dashboard.
func (r *StockLogRepository) Recent(ctx context.Context, limit int) ([]models.StockLog, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	var logs []models.StockLog
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
