// Package services holds the domain logic. Services take an authenticated
// actor ID for audit attribution, run their mutations inside database
// transactions, and return the post-commit events the caller dispatches.
package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/events"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/repositories"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/metrics"
)

// numberAttempts bounds the retry loop on order-number collisions.
const numberAttempts = 5

// OrderLineInput is one requested order line.
type OrderLineInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,min=1"`
}

// CreateOrderInput is the validated request body for order creation.
// Total is never accepted from the client; it is always computed.
type CreateOrderInput struct {
	CustomerName    string           `json:"customer_name"    validate:"required,min=2,max=255"`
	CustomerEmail   string           `json:"customer_email"   validate:"nullable,email"`
	CustomerPhone   string           `json:"customer_phone"   validate:"nullable,max=50"`
	ShippingAddress string           `json:"shipping_address" validate:"nullable"`
	Notes           string           `json:"notes"            validate:"nullable"`
	Items           []OrderLineInput `json:"items"`
}

type OrderService struct {
	db     *gorm.DB
	orders *repositories.OrderRepository

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:     db,
		orders: repositories.NewOrderRepository(db),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *OrderService) nextNumber(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.GenerateOrderNumber(now, s.rnd)
}

// Create places an order: it validates every line against current stock,
// writes the order, its lines, the stock decrements and one audit entry
// per line inside a single transaction. On any failure nothing persists.
// The returned events (order created, stock critical per affected product)
// must be dispatched by the caller after this returns.
func (s *OrderService) Create(ctx context.Context, actorID uint, in CreateOrderInput) (*models.Order, []events.Event, error) {
	if len(in.Items) == 0 {
		return nil, nil, apperr.Validation(map[string]string{"items": "at least one item is required"})
	}
	for i, line := range in.Items {
		if line.ProductID == 0 || line.Quantity < 1 {
			return nil, nil, apperr.Validation(map[string]string{
				"items": fmt.Sprintf("item %d: product_id and a quantity of at least 1 are required", i+1),
			})
		}
	}

	var (
		orderID    uint
		productIDs []uint
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.uniqueNumber(tx)
		if err != nil {
			return err
		}

		actor := actorID
		order := models.Order{
			Number:          number,
			CustomerName:    in.CustomerName,
			CustomerEmail:   in.CustomerEmail,
			CustomerPhone:   in.CustomerPhone,
			ShippingAddress: in.ShippingAddress,
			Notes:           in.Notes,
			Status:          models.OrderPending,
		}
		if actor != 0 {
			order.UserID = &actor
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		var total float64
		for _, line := range in.Items {
			product, err := lockedProduct(tx, line.ProductID)
			if err != nil {
				return err
			}

			// Conditional decrement guards against a concurrent order
			// draining the same product between our read and this write.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperr.Conflict("insufficient stock: %s has %d, %d requested",
					product.Name, product.Stock, line.Quantity)
			}

			before := product.Stock
			after := before - line.Quantity

			status := models.NextProductStatus(product.Status, after)
			if status != product.Status {
				if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
					UpdateColumn("status", status).Error; err != nil {
					return fmt.Errorf("update product status: %w", err)
				}
			}

			lineTotal := models.ComputeLineTotal(line.Quantity, product.Price)
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				LineTotal: lineTotal,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			log := models.StockLog{
				ProductID: product.ID,
				OrderID:   &order.ID,
				Change:    -line.Quantity,
				Before:    before,
				After:     after,
				Reason:    models.StockConsumption,
				Note:      "order " + order.Number,
			}
			if actor != 0 {
				log.UserID = &actor
			}
			if err := tx.Create(&log).Error; err != nil {
				return fmt.Errorf("create stock log: %w", err)
			}

			total += lineTotal
			productIDs = append(productIDs, product.ID)
		}

		if err := tx.Model(&order).UpdateColumn("total", total).Error; err != nil {
			return fmt.Errorf("update order total: %w", err)
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, nil, asAppError(err)
	}

	metrics.OrdersCreated.Inc()

	// Post-commit: re-read the order with its lines and every affected
	// product for the notification payloads.
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	evts := []events.Event{events.OrderCreated(order)}
	seen := make(map[uint]bool, len(productIDs))
	for _, pid := range productIDs {
		if seen[pid] {
			continue
		}
		seen[pid] = true

		var product models.Product
		if err := s.db.WithContext(ctx).First(&product, pid).Error; err != nil {
			continue
		}
		if product.IsCritical() {
			evts = append(evts, events.StockCritical(&product))
			metrics.StockCritical.Inc()
		}
	}

	return order, evts, nil
}

// uniqueNumber generates an order number, retrying on collision with a
// fresh random suffix up to numberAttempts times.
func (s *OrderService) uniqueNumber(tx *gorm.DB) (string, error) {
	now := time.Now()
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number := s.nextNumber(now)
		var n int64
		if err := tx.Model(&models.Order{}).Where("number = ?", number).Count(&n).Error; err != nil {
			return "", fmt.Errorf("check order number: %w", err)
		}
		if n == 0 {
			return number, nil
		}
	}
	return "", apperr.Conflict("could not allocate a unique order number, retry the request")
}

// UpdateStatus moves an order to newStatus. Transitioning into cancelled
// restores every line's stock inside one transaction with "return" audit
// entries; cancelling an already-cancelled order changes nothing.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID uint, newStatus models.OrderStatus) (*models.Order, []events.Event, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, nil, apperr.Validation(map[string]string{"status": "must be one of pending, preparing, shipped, completed, cancelled"})
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("order %d not found", orderID)
		}
		return nil, nil, apperr.Internal(err)
	}

	previous := order.Status
	if previous == newStatus {
		return order, nil, nil
	}
	if previous == models.OrderCompleted || previous == models.OrderCancelled {
		return nil, nil, apperr.Conflict("order %s is %s and cannot change status", order.Number, previous)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if newStatus == models.OrderCancelled {
			if err := restoreOrderStock(tx, order, actorID, "cancel "+order.Number); err != nil {
				return err
			}
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			UpdateColumn("status", newStatus).Error
	})
	if err != nil {
		return nil, nil, asAppError(err)
	}

	order.Status = newStatus
	return order, []events.Event{events.StatusUpdated(order, previous)}, nil
}

// Delete removes a pending order, restoring its stock with "return" audit
// entries and cascading to its line items. Non-pending orders are refused.
func (s *OrderService) Delete(ctx context.Context, actorID, orderID uint) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order %d not found", orderID)
		}
		return apperr.Internal(err)
	}

	if order.Status != models.OrderPending {
		return apperr.Conflict("only pending orders can be deleted, order %s is %s", order.Number, order.Status)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := restoreOrderStock(tx, order, actorID, "delete "+order.Number); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("order_id = ?", order.ID).
			Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		if err := tx.Unscoped().Delete(&models.Order{}, order.ID).Error; err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	return asAppError(err)
}

// Get loads one order with its lines.
func (s *OrderService) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order %d not found", orderID)
		}
		return nil, apperr.Internal(err)
	}
	return order, nil
}

// List returns a filtered page of orders.
func (s *OrderService) List(ctx context.Context, f repositories.OrderFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return orders, total, nil
}

// restoreOrderStock puts every line's quantity back on its product and
// appends one "return" audit entry per line. Runs inside the caller's
// transaction.
func restoreOrderStock(tx *gorm.DB, order *models.Order, actorID uint, note string) error {
	for _, item := range order.Items {
		product, err := lockedProduct(tx, item.ProductID)
		if err != nil {
			return err
		}

		before := product.Stock
		after := before + item.Quantity

		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}

		status := models.NextProductStatus(product.Status, after)
		if status != product.Status {
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				UpdateColumn("status", status).Error; err != nil {
				return fmt.Errorf("update product status: %w", err)
			}
		}

		log := models.StockLog{
			ProductID: product.ID,
			OrderID:   &order.ID,
			Change:    item.Quantity,
			Before:    before,
			After:     after,
			Reason:    models.StockReturn,
			Note:      note,
		}
		if actorID != 0 {
			log.UserID = &actorID
		}
		if err := tx.Create(&log).Error; err != nil {
			return fmt.Errorf("create stock log: %w", err)
		}
	}
	return nil
}

// lockedProduct reads a product inside tx, mapping the missing-row case to
// a not-found error.
func lockedProduct(tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product %d not found", id)
		}
		return nil, fmt.Errorf("read product: %w", err)
	}
	return &product, nil
}

// asAppError passes typed errors through and wraps everything else.
func asAppError(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	return apperr.Internal(err)
}
