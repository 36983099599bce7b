package seeders

import (
	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/auth"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("demo_products", SeedDemoProducts)
}

// SeedAdminUser creates the initial admin account when no users exist.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Active:       true,
	}).Error
}

// SeedDemoProducts inserts a small catalogue for local development.
func SeedDemoProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	barcode := func(s string) *string { return &s }

	products := []models.Product{
		{Name: "Wireless Mouse", Category: "Electronics", Description: "2.4GHz wireless mouse", Price: 19.90, Stock: 120, CriticalLevel: 20, Status: models.ProductActive, Barcode: barcode("8690000000011")},
		{Name: "Mechanical Keyboard", Category: "Electronics", Description: "Tenkeyless, brown switches", Price: 74.50, Stock: 35, CriticalLevel: 10, Status: models.ProductActive, Barcode: barcode("8690000000028")},
		{Name: "USB-C Cable 1m", Category: "Accessories", Description: "Braided charging cable", Price: 6.25, Stock: 8, CriticalLevel: 15, Status: models.ProductActive, Barcode: barcode("8690000000035")},
		{Name: "Notebook Stand", Category: "Accessories", Description: "Aluminium, adjustable", Price: 32.00, Stock: 0, CriticalLevel: 5, Status: models.ProductOutOfStock, Barcode: barcode("8690000000042")},
		{Name: "Desk Lamp", Category: "Home Office", Description: "LED, warm white", Price: 27.75, Stock: 54, CriticalLevel: 10, Status: models.ProductActive},
	}

	return db.Create(&products).Error
}
