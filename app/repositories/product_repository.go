// Package repositories holds the GORM data access layer. Repositories take
// plain filter values and return rows plus a total count; business rules
// live in app/services.
package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
)

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	Search       string // matches name, category or barcode
	Category     string
	Status       models.ProductStatus
	CriticalOnly bool
	Page         int
	Limit        int
	SortBy       string // name | price | stock | created_at
	SortDesc     bool
}

// Normalize clamps pagination and whitelists the sort column.
func (f *ProductFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	switch f.SortBy {
	case "name", "price", "stock", "created_at":
	default:
		f.SortBy = "created_at"
		f.SortDesc = true
	}
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByBarcode looks up a product by its unique barcode.
func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns a filtered page of products and the unpaginated total.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	f.Normalize()

	q := r.db.WithContext(ctx).Model(&models.Product{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR category LIKE ? OR barcode LIKE ?", like, like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CriticalOnly {
		q = q.Where("stock <= critical_level")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := f.SortBy
	if f.SortDesc {
		order += " DESC"
	}

	var products []models.Product
	err := q.Order(order).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&products).Error
	return products, total, err
}

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update persists all fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete hard-deletes a product row.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Product{}, id).Error
}

// CountOrderItems returns how many order lines reference the product.
func (r *ProductRepository) CountOrderItems(ctx context.Context, productID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

// Categories lists the distinct non-empty category names.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &out).Error
	return out, err
}

// Critical lists every product at or below its critical level. Inactive
// products are excluded: nothing is reordered for a product taken off sale.
func (r *ProductRepository) Critical(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("stock <= critical_level").
		Where("status <> ?", models.ProductInactive).
		Order("stock").
		Find(&products).Error
	return products, err
}
