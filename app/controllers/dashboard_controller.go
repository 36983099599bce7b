package controllers

import (
	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/cache"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ctx"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(db *gorm.DB, c *cache.Cache) *DashboardController {
	return &DashboardController{dashboard: services.NewDashboardService(db, c)}
}

func (d *DashboardController) Stats(c *ctx.Context) {
	stats, err := d.dashboard.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(stats)
}

func (d *DashboardController) SalesChart(c *ctx.Context) {
	points, err := d.dashboard.SalesChart(c.Request.Context(), c.QueryDefault("period", "daily"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(points)
}

func (d *DashboardController) TopProducts(c *ctx.Context) {
	rows, err := d.dashboard.TopProducts(c.Request.Context(), c.QueryInt("limit", 5))
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(rows)
}

func (d *DashboardController) StatusDistribution(c *ctx.Context) {
	rows, err := d.dashboard.StatusDistribution(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(rows)
}

func (d *DashboardController) CategorySales(c *ctx.Context) {
	rows, err := d.dashboard.CategorySales(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(rows)
}

func (d *DashboardController) RecentStockLogs(c *ctx.Context) {
	logs, err := d.dashboard.RecentStockLogs(c.Request.Context(), c.QueryInt("limit", 10))
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(logs)
}

func (d *DashboardController) RecentOrders(c *ctx.Context) {
	orders, err := d.dashboard.RecentOrders(c.Request.Context(), c.QueryInt("limit", 5))
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(orders)
}
