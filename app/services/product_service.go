package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/repositories"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
)

// CreateProductInput is the validated request body for product creation.
type CreateProductInput struct {
	Name          string  `json:"name"           validate:"required,min=2,max=255"`
	Category      string  `json:"category"       validate:"nullable,max=100"`
	Description   string  `json:"description"    validate:"nullable"`
	Price         float64 `json:"price"          validate:"gte=0"`
	Stock         int     `json:"stock"          validate:"gte=0"`
	CriticalLevel *int    `json:"critical_level" validate:"nullable,gte=0"`
	Barcode       string  `json:"barcode"        validate:"nullable,max=100"`
	ImageURL      string  `json:"image_url"      validate:"nullable,max=512"`
}

// UpdateProductInput updates catalogue fields. Stock is deliberately
// absent; quantity changes go through the stock or order paths only.
type UpdateProductInput struct {
	Name          string   `json:"name"           validate:"required,min=2,max=255"`
	Category      string   `json:"category"       validate:"nullable,max=100"`
	Description   string   `json:"description"    validate:"nullable"`
	Price         *float64 `json:"price"          validate:"nullable,gte=0"`
	CriticalLevel *int     `json:"critical_level" validate:"nullable,gte=0"`
	Status        string   `json:"status"         validate:"nullable,in=active,inactive,out_of_stock"`
	Barcode       string   `json:"barcode"        validate:"nullable,max=100"`
	ImageURL      string   `json:"image_url"      validate:"nullable,max=512"`
}

type ProductService struct {
	db       *gorm.DB
	products *repositories.ProductRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		db:       db,
		products: repositories.NewProductRepository(db),
	}
}

// Create adds a product. A positive initial stock writes an "inbound"
// audit entry so the trail starts at the true opening balance.
func (s *ProductService) Create(ctx context.Context, actorID uint, in CreateProductInput) (*models.Product, error) {
	critical := 10
	if in.CriticalLevel != nil {
		critical = *in.CriticalLevel
	}

	product := models.Product{
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		Description:   in.Description,
		Price:         in.Price,
		Stock:         in.Stock,
		CriticalLevel: critical,
		ImageURL:      in.ImageURL,
	}
	product.Status = models.NextProductStatus(models.ProductActive, product.Stock)
	if b := strings.TrimSpace(in.Barcode); b != "" {
		product.Barcode = &b
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if product.Barcode != nil {
			var n int64
			if err := tx.Model(&models.Product{}).
				Where("barcode = ?", *product.Barcode).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return apperr.Conflict("barcode %s is already in use", *product.Barcode)
			}
		}

		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		if product.Stock > 0 {
			log := models.StockLog{
				ProductID: product.ID,
				Change:    product.Stock,
				Before:    0,
				After:     product.Stock,
				Reason:    models.StockInbound,
				Note:      "initial stock",
			}
			if actorID != 0 {
				log.UserID = &actorID
			}
			if err := tx.Create(&log).Error; err != nil {
				return fmt.Errorf("create stock log: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return &product, nil
}

// Update changes catalogue fields. Explicitly setting status inactive (or
// active) is honoured, then the derived rule is re-applied against the
// current quantity.
func (s *ProductService) Update(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product %d not found", id)
		}
		return nil, apperr.Internal(err)
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Category = strings.TrimSpace(in.Category)
	product.Description = in.Description
	product.ImageURL = in.ImageURL
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.CriticalLevel != nil {
		product.CriticalLevel = *in.CriticalLevel
	}
	if in.Status != "" {
		product.Status = models.ProductStatus(in.Status)
	}
	product.Status = models.NextProductStatus(product.Status, product.Stock)

	if b := strings.TrimSpace(in.Barcode); b != "" {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("barcode = ? AND id <> ?", b, id).Count(&n).Error; err != nil {
			return nil, apperr.Internal(err)
		}
		if n > 0 {
			return nil, apperr.Conflict("barcode %s is already in use", b)
		}
		product.Barcode = &b
	} else {
		product.Barcode = nil
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperr.Internal(err)
	}
	return product, nil
}

// Delete hard-deletes a product. Products referenced by order lines are
// protected; historical orders must keep their rows resolvable.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("product %d not found", id)
		}
		return apperr.Internal(err)
	}

	refs, err := s.products.CountOrderItems(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if refs > 0 {
		return apperr.Conflict("product %d is referenced by %d order line(s) and cannot be deleted", id, refs)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Get loads one product.
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product %d not found", id)
		}
		return nil, apperr.Internal(err)
	}
	return product, nil
}

// List returns a filtered page of products.
func (s *ProductService) List(ctx context.Context, f repositories.ProductFilter) ([]models.Product, int64, error) {
	products, total, err := s.products.List(ctx, f)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return products, total, nil
}

// Categories lists the distinct category names in use.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}

// Critical lists every product at or below its critical level.
func (s *ProductService) Critical(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.Critical(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return products, nil
}
