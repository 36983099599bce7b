package models

import "gorm.io/gorm"

// StockReason classifies a stock movement.
type StockReason string

const (
	StockInbound     StockReason = "inbound"
	StockOutbound    StockReason = "outbound"
	StockCorrection  StockReason = "correction"
	StockConsumption StockReason = "order-consumption"
	StockReturn      StockReason = "return"
)

// ValidStockReason reports whether r is a reason callers may submit
// directly. order-consumption is written by the order flow only.
func ValidStockReason(r StockReason) bool {
	switch r {
	case StockInbound, StockOutbound, StockCorrection, StockReturn:
		return true
	}
	return false
}

// StockLog is one immutable entry in the stock audit trail.
// After always equals Before + Change; rows are never updated or deleted.
type StockLog struct {
	gorm.Model
	ProductID uint        `gorm:"not null;index" json:"product_id"`
	UserID    *uint       `gorm:"index"          json:"user_id"`
	OrderID   *uint       `gorm:"index"          json:"order_id"`
	Change    int         `gorm:"not null"       json:"change"`
	Before    int         `gorm:"not null"       json:"before"`
	After     int         `gorm:"not null"       json:"after"`
	Reason    StockReason `gorm:"size:30;not null;index" json:"reason"`
	Note      string      `gorm:"size:500"       json:"note"`
	Product   Product     `json:"product,omitempty"`
}
