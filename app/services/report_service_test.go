package services_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
)

func TestSalesPDF(t *testing.T) {
	db := newTestDB(t)
	orders := services.NewOrderService(db)
	svc := services.NewReportService(db, nil)

	p := seedProduct(t, db, "Mouse", 20.00, 100, 10)
	_, _, err := orders.Create(context.Background(), 1, services.CreateOrderInput{
		CustomerName: "Jane Doe",
		Items:        []services.OrderLineInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)
	data, name, err := svc.SalesPDF(context.Background(), from, to)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Contains(t, name, ".pdf")
}

func TestProductsExcelRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewReportService(db, nil)

	seedProduct(t, db, "Keyboard", 74.50, 40, 10)
	seedProduct(t, db, "Mouse", 19.90, 100, 10)

	data, name, err := svc.ProductsExcel(context.Background())
	require.NoError(t, err)
	assert.Contains(t, name, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Keyboard", rows[1][1])
	assert.Equal(t, "Mouse", rows[2][1])
}

func TestImportProducts(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewReportService(db, nil)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]any{
		{"name", "category", "price", "stock", "critical_level", "barcode"},
		{"Desk Lamp", "Home Office", 27.75, 54, 10, "869111"},
		{"Broken Row", "Misc", "not-a-price", 1, "", ""},
		{"Monitor Arm", "Accessories", 45.00, 12, "", ""},
	}
	for r, row := range cells {
		for c, v := range row {
			col, _ := excelize.ColumnNumberToName(c + 1)
			require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r+1), v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := svc.ImportProducts(context.Background(), 1, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 3")

	var lamp models.Product
	require.NoError(t, db.Where("name = ?", "Desk Lamp").First(&lamp).Error)
	assert.Equal(t, 54, lamp.Stock)
	assert.Equal(t, 10, lamp.CriticalLevel)

	// Initial stock on imported rows lands in the audit trail too.
	assert.Len(t, stockLogsFor(t, db, lamp.ID), 1)
}

func TestImportProductsRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewReportService(db, nil)

	_, err := svc.ImportProducts(context.Background(), 1, bytes.NewReader([]byte("not an xlsx")))
	require.Error(t, err)
}
