package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/events"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
)

func TestAdjustInbound(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	p := seedProduct(t, db, "Widget", 10.00, 20, 5)

	updated, evts, err := svc.Adjust(context.Background(), 1, p.ID, services.AdjustStockInput{
		Amount: 30,
		Reason: "inbound",
		Note:   "supplier delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Stock)

	logs := stockLogsFor(t, db, p.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, models.StockInbound, logs[0].Reason)
	assert.Equal(t, 30, logs[0].Change)
	assert.Equal(t, 20, logs[0].Before)
	assert.Equal(t, 50, logs[0].After)
	assert.Equal(t, logs[0].Before+logs[0].Change, logs[0].After)
	assert.Equal(t, "supplier delivery", logs[0].Note)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, uint(1), *logs[0].UserID)

	require.Len(t, evts, 1)
	assert.Equal(t, events.TypeStockUpdated, evts[0].Type)
	data, ok := evts[0].Data.(events.StockUpdatedData)
	require.True(t, ok)
	assert.Equal(t, 20, data.PreviousStock)
	assert.Equal(t, 50, data.NewStock)
	assert.False(t, data.NowCritical)
}

func TestAdjustOutboundInsufficient(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	p := seedProduct(t, db, "Widget", 10.00, 5, 2)

	_, _, err := svc.Adjust(context.Background(), 1, p.ID, services.AdjustStockInput{
		Amount: 6,
		Reason: "outbound",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Refused adjustment leaves stock and audit trail untouched.
	assert.Equal(t, 5, reloadProduct(t, db, p.ID).Stock)
	assert.Empty(t, stockLogsFor(t, db, p.ID))
}

func TestAdjustOutbound(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	p := seedProduct(t, db, "Widget", 10.00, 10, 3)

	updated, evts, err := svc.Adjust(context.Background(), 1, p.ID, services.AdjustStockInput{
		Amount: 8,
		Reason: "outbound",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Stock)

	data, ok := evts[0].Data.(events.StockUpdatedData)
	require.True(t, ok)
	assert.True(t, data.NowCritical)
}

func TestAdjustCorrectionSetsAbsolute(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	p := seedProduct(t, db, "Widget", 10.00, 37, 5)

	updated, _, err := svc.Adjust(context.Background(), 1, p.ID, services.AdjustStockInput{
		Amount: 12,
		Reason: "correction",
		Note:   "annual count",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Stock)

	logs := stockLogsFor(t, db, p.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, -25, logs[0].Change)
	assert.Equal(t, 37, logs[0].Before)
	assert.Equal(t, 12, logs[0].After)
}

func TestAdjustCorrectionToZero(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	p := seedProduct(t, db, "Widget", 10.00, 9, 5)

	// Counting a shelf down to nothing is a legitimate correction.
	updated, _, err := svc.Adjust(context.Background(), 1, p.ID, services.AdjustStockInput{
		Amount: 0,
		Reason: "correction",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, models.ProductOutOfStock, updated.Status)

	logs := stockLogsFor(t, db, p.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, -9, logs[0].Change)
}

func TestAdjustInboundRevivesOutOfStock(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	p := seedProduct(t, db, "Widget", 10.00, 0, 5)
	require.Equal(t, models.ProductOutOfStock, p.Status)

	updated, _, err := svc.Adjust(context.Background(), 1, p.ID, services.AdjustStockInput{
		Amount: 25,
		Reason: "inbound",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProductActive, updated.Status)
}

func TestAdjustPreservesInactive(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	p := seedProduct(t, db, "Widget", 10.00, 10, 5)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).
		UpdateColumn("status", models.ProductInactive).Error)

	// Replenishing a deliberately disabled product must not re-enable it.
	updated, _, err := svc.Adjust(context.Background(), 1, p.ID, services.AdjustStockInput{
		Amount: 5,
		Reason: "inbound",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProductInactive, updated.Status)
}

func TestAdjustInvalidReason(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	p := seedProduct(t, db, "Widget", 10.00, 10, 5)

	_, _, err := svc.Adjust(context.Background(), 1, p.ID, services.AdjustStockInput{
		Amount: 5,
		Reason: "shrinkage",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAdjustUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	_, _, err := svc.Adjust(context.Background(), 1, 404, services.AdjustStockInput{
		Amount: 5,
		Reason: "inbound",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStockHistory(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStockService(db)

	p := seedProduct(t, db, "Widget", 10.00, 10, 5)
	for i := 0; i < 3; i++ {
		_, _, err := svc.Adjust(context.Background(), 1, p.ID, services.AdjustStockInput{
			Amount: 1,
			Reason: "inbound",
		})
		require.NoError(t, err)
	}

	logs, total, err := svc.History(context.Background(), p.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 2)

	_, _, err = svc.History(context.Background(), 404, 1, 10)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
