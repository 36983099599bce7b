package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/config"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/logger"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/metrics"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/storage"
)

// ImportResult summarises a row-wise product import.
type ImportResult struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}

// ReportService renders PDF and Excel documents from catalogue, order and
// audit rows. It reads the stores directly; no domain rules live here.
type ReportService struct {
	db       *gorm.DB
	products *ProductService
	disks    *storage.Manager
}

func NewReportService(db *gorm.DB, disks *storage.Manager) *ReportService {
	return &ReportService{
		db:       db,
		products: NewProductService(db),
		disks:    disks,
	}
}

// SalesPDF renders a sales summary with one row per non-cancelled order in
// the range.
func (s *ReportService) SalesPDF(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("status <> ? AND created_at >= ? AND created_at <= ?",
			models.OrderCancelled, from, to).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	var total float64
	for _, o := range orders {
		total += o.Total
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Sales Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("%s - %s    Orders: %d    Total: %.2f",
		from.Format("2006-01-02"), to.Format("2006-01-02"), len(orders), total))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	headers := []struct {
		label string
		width float64
	}{
		{"Number", 35}, {"Date", 30}, {"Customer", 70}, {"Status", 25}, {"Total", 30},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 8, h.label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, o := range orders {
		pdf.CellFormat(35, 7, o.Number, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, o.CreatedAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, o.CustomerName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, string(o.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", o.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", apperr.Internal(err)
	}

	name := fmt.Sprintf("sales-%s-%s.pdf", from.Format("20060102"), to.Format("20060102"))
	metrics.ReportsGenerated.WithLabelValues("sales_pdf").Inc()
	s.archive(ctx, name, buf.Bytes())
	return buf.Bytes(), name, nil
}

// ProductsExcel exports the full catalogue.
func (s *ReportService) ProductsExcel(ctx context.Context) ([]byte, string, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, "", apperr.Internal(err)
	}

	f := excelize.NewFile()
	sheet := "Products"
	f.SetSheetName("Sheet1", sheet)
	writeHeader(f, sheet, []string{"ID", "Name", "Category", "Price", "Stock", "Critical Level", "Status", "Barcode"})

	for i, p := range products {
		row := i + 2
		barcode := ""
		if p.Barcode != nil {
			barcode = *p.Barcode
		}
		writeRow(f, sheet, row, []any{p.ID, p.Name, p.Category, p.Price, p.Stock, p.CriticalLevel, string(p.Status), barcode})
	}

	return s.finishExcel(ctx, f, "products", "products_excel")
}

// StockExcel exports the stock audit trail.
func (s *ReportService) StockExcel(ctx context.Context) ([]byte, string, error) {
	var logs []models.StockLog
	err := s.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Limit(10000).
		Find(&logs).Error
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	f := excelize.NewFile()
	sheet := "Stock Movements"
	f.SetSheetName("Sheet1", sheet)
	writeHeader(f, sheet, []string{"Date", "Product", "Change", "Before", "After", "Reason", "Note"})

	for i, l := range logs {
		row := i + 2
		writeRow(f, sheet, row, []any{
			l.CreatedAt.Format("2006-01-02 15:04"), l.Product.Name,
			l.Change, l.Before, l.After, string(l.Reason), l.Note,
		})
	}

	return s.finishExcel(ctx, f, "stock-movements", "stock_excel")
}

// OrdersExcel exports orders in the given date range.
func (s *ReportService) OrdersExcel(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)
	writeHeader(f, sheet, []string{"Number", "Date", "Customer", "Email", "Status", "Total"})

	for i, o := range orders {
		row := i + 2
		writeRow(f, sheet, row, []any{
			o.Number, o.CreatedAt.Format("2006-01-02 15:04"), o.CustomerName,
			o.CustomerEmail, string(o.Status), o.Total,
		})
	}

	return s.finishExcel(ctx, f, "orders", "orders_excel")
}

// ImportProducts reads an .xlsx with columns name, category, price, stock,
// critical_level, barcode and creates one product per data row. Bad rows
// are reported, not fatal.
func (s *ReportService) ImportProducts(ctx context.Context, actorID uint, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation(map[string]string{"file": "not a valid xlsx file"})
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(rows) < 2 {
		return nil, apperr.Validation(map[string]string{"file": "no data rows found"})
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if len(row) == 0 || strings.TrimSpace(cell(row, 0)) == "" {
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(cell(row, 2)), 64)
		if err != nil || price < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid price", rowNum))
			continue
		}
		stock, err := strconv.Atoi(strings.TrimSpace(cell(row, 3)))
		if err != nil || stock < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid stock", rowNum))
			continue
		}

		in := CreateProductInput{
			Name:     strings.TrimSpace(cell(row, 0)),
			Category: strings.TrimSpace(cell(row, 1)),
			Price:    price,
			Stock:    stock,
			Barcode:  strings.TrimSpace(cell(row, 5)),
		}
		if raw := strings.TrimSpace(cell(row, 4)); raw != "" {
			critical, err := strconv.Atoi(raw)
			if err != nil || critical < 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid critical_level", rowNum))
				continue
			}
			in.CriticalLevel = &critical
		}

		if _, err := s.products.Create(ctx, actorID, in); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

func (s *ReportService) finishExcel(ctx context.Context, f *excelize.File, prefix, kind string) ([]byte, string, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	name := fmt.Sprintf("%s-%s.xlsx", prefix, time.Now().Format("20060102-150405"))
	metrics.ReportsGenerated.WithLabelValues(kind).Inc()
	s.archive(ctx, name, buf.Bytes())
	return buf.Bytes(), name, nil
}

// archive copies the generated document to the configured disk when
// REPORT_ARCHIVE is enabled. Failures are logged only.
func (s *ReportService) archive(ctx context.Context, name string, data []byte) {
	if s.disks == nil || config.Get("REPORT_ARCHIVE", "false") != "true" {
		return
	}
	if err := s.disks.Default().Put(ctx, name, data); err != nil {
		logger.WithCtx(ctx).Warn("report: archive failed", "file", name, "error", err)
	}
}

func writeHeader(f *excelize.File, sheet string, labels []string) {
	for i, label := range labels {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheet, col+"1", label)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
