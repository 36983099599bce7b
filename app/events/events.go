// Package events defines the domain events emitted after a transaction
// commits, and the publishers that fan them out.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
)

// Event types double as AMQP routing keys.
const (
	TypeOrderCreated  = "order.created"
	TypeOrderStatus   = "order.status_updated"
	TypeStockCritical = "stock.critical"
	TypeStockUpdated  = "stock.updated"
)

// Event is one post-commit notification. Data holds the type-specific
// payload that goes on the wire unchanged.
type Event struct {
	ID        string    `json:"-"`
	Type      string    `json:"event"`
	Timestamp time.Time `json:"-"`
	Data      any       `json:"data"`
}

func newEvent(typ string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// StockCriticalData announces a product at or below its critical level.
type StockCriticalData struct {
	ProductID     uint   `json:"product_id"`
	ProductName   string `json:"product_name"`
	Stock         int    `json:"stock"`
	CriticalLevel int    `json:"critical_level"`
}

// StatusUpdatedData announces an order status transition.
type StatusUpdatedData struct {
	OrderID        uint               `json:"order_id"`
	Number         string             `json:"number"`
	PreviousStatus models.OrderStatus `json:"previous_status"`
	NewStatus      models.OrderStatus `json:"new_status"`
}

// StockUpdatedData announces a direct stock adjustment.
type StockUpdatedData struct {
	ProductID     uint   `json:"product_id"`
	ProductName   string `json:"product_name"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	NowCritical   bool   `json:"now_critical"`
}

// OrderCreated carries the full order including its line items.
func OrderCreated(order *models.Order) Event {
	return newEvent(TypeOrderCreated, order)
}

// StockCritical is emitted once per product whose post-commit stock sits
// at or below its critical level.
func StockCritical(p *models.Product) Event {
	return newEvent(TypeStockCritical, StockCriticalData{
		ProductID:     p.ID,
		ProductName:   p.Name,
		Stock:         p.Stock,
		CriticalLevel: p.CriticalLevel,
	})
}

// StatusUpdated is emitted after any order status change.
func StatusUpdated(order *models.Order, previous models.OrderStatus) Event {
	return newEvent(TypeOrderStatus, StatusUpdatedData{
		OrderID:        order.ID,
		Number:         order.Number,
		PreviousStatus: previous,
		NewStatus:      order.Status,
	})
}

// StockUpdated is emitted after a direct stock adjustment.
func StockUpdated(p *models.Product, previousStock int) Event {
	return newEvent(TypeStockUpdated, StockUpdatedData{
		ProductID:     p.ID,
		ProductName:   p.Name,
		PreviousStock: previousStock,
		NewStock:      p.Stock,
		NowCritical:   p.IsCritical(),
	})
}
