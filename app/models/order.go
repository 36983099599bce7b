package models

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order is a customer order. UserID records which staff member placed it
// and survives user deletion.
type Order struct {
	gorm.Model
	Number          string      `gorm:"size:20;uniqueIndex;not null" json:"number"`
	CustomerName    string      `gorm:"size:255;not null"            json:"customer_name"`
	CustomerEmail   string      `gorm:"size:255"                     json:"customer_email"`
	CustomerPhone   string      `gorm:"size:50"                      json:"customer_phone"`
	ShippingAddress string      `gorm:"type:text"                    json:"shipping_address"`
	Notes           string      `gorm:"type:text"                    json:"notes"`
	Total           float64     `gorm:"not null;default:0"           json:"total"`
	Status          OrderStatus `gorm:"size:20;default:pending"      json:"status"`
	UserID          *uint       `gorm:"index"                        json:"user_id"`
	Items           []OrderItem `gorm:"constraint:OnDelete:CASCADE"  json:"items,omitempty"`
}

// OrderItem is one line of an order. UnitPrice is the product price
// captured at creation time; later catalogue price changes do not touch it.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index"     json:"order_id"`
	ProductID uint    `gorm:"not null;index"     json:"product_id"`
	Quantity  int     `gorm:"not null"           json:"quantity"`
	UnitPrice float64 `gorm:"not null"           json:"unit_price"`
	LineTotal float64 `gorm:"not null"           json:"line_total"`
	Product   Product `gorm:"constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}

// GenerateOrderNumber builds an order number of the form SPyymmddNNNN,
// where NNNN is a random 4-digit suffix drawn from rnd.
func GenerateOrderNumber(now time.Time, rnd *rand.Rand) string {
	return fmt.Sprintf("SP%s%04d", now.Format("060102"), rnd.Intn(10000))
}

// ComputeLineTotal multiplies quantity by unit price, rounded to cents.
func ComputeLineTotal(quantity int, unitPrice float64) float64 {
	return math.Round(float64(quantity)*unitPrice*100) / 100
}
