package controllers

import (
	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/events"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/repositories"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ctx"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/middleware"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/response"
)

type ProductController struct {
	products  *services.ProductService
	stock     *services.StockService
	publisher events.Publisher
}

func NewProductController(db *gorm.DB, pub events.Publisher) *ProductController {
	return &ProductController{
		products:  services.NewProductService(db),
		stock:     services.NewStockService(db),
		publisher: pub,
	}
}

func (p *ProductController) List(c *ctx.Context) {
	filter := repositories.ProductFilter{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		Status:       models.ProductStatus(c.Query("status")),
		CriticalOnly: c.Query("critical") == "true",
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 20),
		SortBy:       c.Query("sort_by"),
		SortDesc:     c.Query("sort_dir") == "desc",
	}

	products, total, err := p.products.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	filter.Normalize()
	c.Paginated(products, response.NewPagination(total, filter.Page, filter.Limit))
}

func (p *ProductController) Get(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	product, err := p.products.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(product)
}

func (p *ProductController) Create(c *ctx.Context) {
	var in services.CreateProductInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	actor := middleware.CurrentUser(c.Request.Context())
	product, err := p.products.Create(c.Request.Context(), actor.ID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.Created(product)
}

func (p *ProductController) Update(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	var in services.UpdateProductInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	product, err := p.products.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(product)
}

func (p *ProductController) Delete(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := p.products.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Success(map[string]string{"message": "product deleted"})
}

func (p *ProductController) Categories(c *ctx.Context) {
	categories, err := p.products.Categories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(categories)
}

func (p *ProductController) Critical(c *ctx.Context) {
	products, err := p.products.Critical(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(products)
}

// AdjustStock applies a manual stock movement and broadcasts the result.
func (p *ProductController) AdjustStock(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	var in services.AdjustStockInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	actor := middleware.CurrentUser(c.Request.Context())
	product, evts, err := p.stock.Adjust(c.Request.Context(), actor.ID, id, in)
	if err != nil {
		c.Error(err)
		return
	}

	events.Dispatch(c.Request.Context(), p.publisher, evts)
	c.Success(product)
}

// StockHistory lists the audit trail for one product.
func (p *ProductController) StockHistory(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	logs, total, err := p.stock.History(c.Request.Context(), id, page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.Paginated(logs, response.NewPagination(total, page, limit))
}
