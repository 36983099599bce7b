package controllers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ctx"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/middleware"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/storage"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	importMaxBytes  = 8 << 20 // 8 MB upload cap
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(db *gorm.DB, disks *storage.Manager) *ReportController {
	return &ReportController{reports: services.NewReportService(db, disks)}
}

// dateRange reads from/to query params, defaulting to the last 30 days.
func dateRange(c *ctx.Context) (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if t, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		from = t
	}
	if t, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		to = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
	}
	return from, to
}

func (r *ReportController) SalesPDF(c *ctx.Context) {
	from, to := dateRange(c)
	data, name, err := r.reports.SalesPDF(c.Request.Context(), from, to)
	if err != nil {
		c.Error(err)
		return
	}
	c.Blob(http.StatusOK, "application/pdf", name, data)
}

func (r *ReportController) ProductsExcel(c *ctx.Context) {
	data, name, err := r.reports.ProductsExcel(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Blob(http.StatusOK, xlsxContentType, name, data)
}

func (r *ReportController) StockExcel(c *ctx.Context) {
	data, name, err := r.reports.StockExcel(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Blob(http.StatusOK, xlsxContentType, name, data)
}

func (r *ReportController) OrdersExcel(c *ctx.Context) {
	from, to := dateRange(c)
	data, name, err := r.reports.OrdersExcel(c.Request.Context(), from, to)
	if err != nil {
		c.Error(err)
		return
	}
	c.Blob(http.StatusOK, xlsxContentType, name, data)
}

// ImportProducts accepts an xlsx upload in the "file" form field.
func (r *ReportController) ImportProducts(c *ctx.Context) {
	file, _, err := c.FormFile("file", importMaxBytes)
	if err != nil {
		c.Error(err)
		return
	}
	defer file.Close()

	actor := middleware.CurrentUser(c.Request.Context())
	result, err := r.reports.ImportProducts(c.Request.Context(), actor.ID, file)
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(result)
}
