package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/repositories"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
)

func TestCreateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewProductService(db)

	product, err := svc.Create(context.Background(), 1, services.CreateProductInput{
		Name:     "  Desk Lamp  ",
		Category: "Home Office",
		Price:    27.75,
		Stock:    40,
		Barcode:  "8690000000001",
	})
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", product.Name)
	assert.Equal(t, models.ProductActive, product.Status)
	assert.Equal(t, 10, product.CriticalLevel)

	// The audit trail starts at the opening balance.
	logs := stockLogsFor(t, db, product.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, models.StockInbound, logs[0].Reason)
	assert.Equal(t, 0, logs[0].Before)
	assert.Equal(t, 40, logs[0].After)
	assert.Equal(t, "initial stock", logs[0].Note)
}

func TestCreateProductZeroStock(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewProductService(db)

	product, err := svc.Create(context.Background(), 1, services.CreateProductInput{
		Name: "Empty Shelf",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProductOutOfStock, product.Status)
	assert.Empty(t, stockLogsFor(t, db, product.ID))
	assert.Nil(t, product.Barcode)
}

func TestCreateProductBarcodeConflict(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewProductService(db)

	_, err := svc.Create(context.Background(), 1, services.CreateProductInput{
		Name: "First", Barcode: "123456",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, services.CreateProductInput{
		Name: "Second", Barcode: "123456",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateProductKeepsStock(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewProductService(db)

	p := seedProduct(t, db, "Widget", 10.00, 33, 5)

	price := 15.50
	updated, err := svc.Update(context.Background(), p.ID, services.UpdateProductInput{
		Name:  "Widget Pro",
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", updated.Name)
	assert.Equal(t, 15.50, updated.Price)
	assert.Equal(t, 33, updated.Stock)
	assert.Empty(t, stockLogsFor(t, db, p.ID))
}

func TestUpdateProductInactiveOverride(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewProductService(db)

	p := seedProduct(t, db, "Widget", 10.00, 33, 5)

	updated, err := svc.Update(context.Background(), p.ID, services.UpdateProductInput{
		Name:   "Widget",
		Status: "inactive",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProductInactive, updated.Status)

	// Re-activating a product with no stock lands on out_of_stock, not
	// active.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).
		UpdateColumn("stock", 0).Error)
	updated, err = svc.Update(context.Background(), p.ID, services.UpdateProductInput{
		Name:   "Widget",
		Status: "active",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProductOutOfStock, updated.Status)
}

func TestDeleteProductProtectedByOrders(t *testing.T) {
	db := newTestDB(t)
	products := services.NewProductService(db)
	orders := services.NewOrderService(db)

	p := seedProduct(t, db, "Widget", 10.00, 20, 5)
	_, _, err := orders.Create(context.Background(), 1, services.CreateOrderInput{
		CustomerName: "Jane Doe",
		Items:        []services.OrderLineInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = products.Delete(context.Background(), p.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Still deletable once nothing references it.
	free := seedProduct(t, db, "Unreferenced", 5.00, 3, 1)
	require.NoError(t, products.Delete(context.Background(), free.ID))
	_, err = products.Get(context.Background(), free.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListProductsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewProductService(db)

	seedProduct(t, db, "Wireless Mouse", 19.90, 100, 10)
	seedProduct(t, db, "Mouse Pad", 4.50, 3, 10)
	seedProduct(t, db, "Keyboard", 74.50, 40, 10)

	list, total, err := svc.List(context.Background(), repositories.ProductFilter{Search: "mouse"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	critical, err := svc.Critical(context.Background())
	require.NoError(t, err)
	require.Len(t, critical, 1)
	assert.Equal(t, "Mouse Pad", critical[0].Name)
}

func TestCriticalExcludesInactiveProducts(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewProductService(db)

	seedProduct(t, db, "USB Hub", 12.00, 2, 5)
	shelved := seedProduct(t, db, "Discontinued Cable", 3.25, 2, 5)
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", shelved.ID).
		Update("status", models.ProductInactive).Error)

	critical, err := svc.Critical(context.Background())
	require.NoError(t, err)
	require.Len(t, critical, 1)
	assert.Equal(t, "USB Hub", critical[0].Name)
}
