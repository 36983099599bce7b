package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/events"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/repositories"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
)

// AdjustStockInput is a direct stock adjustment request. Amount is an
// absolute magnitude for inbound/outbound/return and the target quantity
// for correction.
type AdjustStockInput struct {
	Amount int    `json:"amount" validate:"gte=0"`
	Reason string `json:"reason" validate:"required,in=inbound,outbound,correction,return"`
	Note   string `json:"note"   validate:"nullable,max=500"`
}

type StockService struct {
	db   *gorm.DB
	logs *repositories.StockLogRepository
}

func NewStockService(db *gorm.DB) *StockService {
	return &StockService{
		db:   db,
		logs: repositories.NewStockLogRepository(db),
	}
}

// Adjust applies a manual stock movement. inbound and return add the
// amount, outbound subtracts it (refusing to go negative), correction sets
// the quantity directly with the delta recorded in the audit entry. Exactly
// one StockLog row is written and the derived product status recomputed.
func (s *StockService) Adjust(ctx context.Context, actorID, productID uint, in AdjustStockInput) (*models.Product, []events.Event, error) {
	reason := models.StockReason(in.Reason)
	if !models.ValidStockReason(reason) {
		return nil, nil, apperr.Validation(map[string]string{"reason": "must be one of inbound, outbound, correction, return"})
	}
	if in.Amount < 0 {
		return nil, nil, apperr.Validation(map[string]string{"amount": "must not be negative"})
	}

	var updated models.Product
	var previousStock int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := lockedProduct(tx, productID)
		if err != nil {
			return err
		}

		before := product.Stock
		var after int
		switch reason {
		case models.StockInbound, models.StockReturn:
			after = before + in.Amount
		case models.StockOutbound:
			after = before - in.Amount
			if after < 0 {
				return apperr.Conflict("insufficient stock: %s has %d, %d requested",
					product.Name, before, in.Amount)
			}
		case models.StockCorrection:
			after = in.Amount
		}

		change := after - before
		status := models.NextProductStatus(product.Status, after)

		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			UpdateColumns(map[string]any{"stock": after, "status": status}).Error; err != nil {
			return fmt.Errorf("update stock: %w", err)
		}

		log := models.StockLog{
			ProductID: product.ID,
			Change:    change,
			Before:    before,
			After:     after,
			Reason:    reason,
			Note:      in.Note,
		}
		if actorID != 0 {
			log.UserID = &actorID
		}
		if err := tx.Create(&log).Error; err != nil {
			return fmt.Errorf("create stock log: %w", err)
		}

		previousStock = before
		updated = *product
		updated.Stock = after
		updated.Status = status
		return nil
	})
	if err != nil {
		return nil, nil, asAppError(err)
	}

	return &updated, []events.Event{events.StockUpdated(&updated, previousStock)}, nil
}

// History returns the audit trail for one product, newest first.
func (s *StockService) History(ctx context.Context, productID uint, page, limit int) ([]models.StockLog, int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).Count(&n).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}
	if n == 0 {
		return nil, 0, apperr.NotFound("product %d not found", productID)
	}

	logs, total, err := s.logs.List(ctx, repositories.StockLogFilter{
		ProductID: productID,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return logs, total, nil
}

// Logs returns the global audit trail with optional reason filter.
func (s *StockService) Logs(ctx context.Context, f repositories.StockLogFilter) ([]models.StockLog, int64, error) {
	logs, total, err := s.logs.List(ctx, f)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return logs, total, nil
}
