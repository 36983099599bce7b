package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A fresh pooled connection would see an empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.StockLog{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock, critical int) *models.Product {
	t.Helper()

	p := models.Product{
		Name:          name,
		Category:      "Test",
		Price:         price,
		Stock:         stock,
		CriticalLevel: critical,
		Status:        models.NextProductStatus(models.ProductActive, stock),
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) *models.Product {
	t.Helper()

	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return &p
}

func stockLogsFor(t *testing.T, db *gorm.DB, productID uint) []models.StockLog {
	t.Helper()

	var logs []models.StockLog
	require.NoError(t, db.Where("product_id = ?", productID).Order("id asc").Find(&logs).Error)
	return logs
}
