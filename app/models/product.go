package models

import "gorm.io/gorm"

// ProductStatus is the lifecycle state of a catalogue product.
type ProductStatus string

const (
	ProductActive     ProductStatus = "active"
	ProductInactive   ProductStatus = "inactive"
	ProductOutOfStock ProductStatus = "out_of_stock"
)

// Product represents a product in the catalogue.
type Product struct {
	gorm.Model
	Name          string        `gorm:"size:255;not null;index" json:"name"`
	Category      string        `gorm:"size:100;index"          json:"category"`
	Description   string        `gorm:"type:text"               json:"description"`
	Price         float64       `gorm:"not null;default:0"      json:"price"`
	Stock         int           `gorm:"not null;default:0"      json:"stock"`
	CriticalLevel int           `gorm:"not null;default:10"     json:"critical_level"`
	Status        ProductStatus `gorm:"size:20;default:active"  json:"status"`
	Barcode       *string       `gorm:"size:100;uniqueIndex"    json:"barcode"`
	ImageURL      string        `gorm:"size:512"                json:"image_url"`
}

// IsCritical reports whether the product is at or below its critical level.
func (p *Product) IsCritical() bool {
	return p.Stock <= p.CriticalLevel
}

// NextProductStatus derives the status a product should carry after its
// stock changes. Zero stock forces out_of_stock; replenishing an
// out-of-stock product reactivates it; a manually deactivated product
// stays inactive either way.
func NextProductStatus(current ProductStatus, stock int) ProductStatus {
	if current == ProductInactive {
		return ProductInactive
	}
	if stock <= 0 {
		return ProductOutOfStock
	}
	if current == ProductOutOfStock {
		return ProductActive
	}
	return current
}

// ValidProductStatus reports whether s is one of the known statuses.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductActive, ProductInactive, ProductOutOfStock:
		return true
	}
	return false
}
