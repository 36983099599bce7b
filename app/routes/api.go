// Package routes wires the HTTP surface: controllers, auth gates and the
// WebSocket endpoint.
package routes

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/controllers"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/events"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/cache"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ctx"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/metrics"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/middleware"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/reqid"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/response"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/router"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/storage"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ws"
)

// Deps carries everything the route tree needs.
type Deps struct {
	DB        *gorm.DB
	Cache     *cache.Cache
	Disks     *storage.Manager
	Hub       *ws.Hub
	Publisher events.Publisher
}

// RegisterAPI mounts the middleware chain and every route.
func RegisterAPI(r *router.Router, d Deps) {
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	authController := controllers.NewAuthController(d.DB)
	productController := controllers.NewProductController(d.DB, d.Publisher)
	orderController := controllers.NewOrderController(d.DB, d.Publisher)
	userController := controllers.NewUserController(d.DB)
	dashboardController := controllers.NewDashboardController(d.DB, d.Cache)
	reportController := controllers.NewReportController(d.DB, d.Disks)

	authed := middleware.Auth(d.DB)
	admin := middleware.RequireRole("admin")

	r.HandleFunc("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	// Authentication
	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", ctx.Handler(authController.Register))
	auth.Post("/login", "auth.login", ctx.Handler(authController.Login))
	auth.Get("/me", "auth.me", ctx.Handler(authController.Me), authed)
	auth.Put("/profile", "auth.profile", ctx.Handler(authController.UpdateProfile), authed)
	auth.Put("/change-password", "auth.change_password", ctx.Handler(authController.ChangePassword), authed)

	// Catalogue and stock
	products := api.Group("/products", authed)
	products.Get("", "products.list", ctx.Handler(productController.List))
	products.Get("/categories", "products.categories", ctx.Handler(productController.Categories))
	products.Get("/critical", "products.critical", ctx.Handler(productController.Critical))
	products.Get("/{id}", "products.show", ctx.Handler(productController.Get))
	products.Post("", "products.create", ctx.Handler(productController.Create), admin)
	products.Put("/{id}", "products.update", ctx.Handler(productController.Update), admin)
	products.Delete("/{id}", "products.delete", ctx.Handler(productController.Delete), admin)
	products.Post("/{id}/stock", "products.stock.adjust", ctx.Handler(productController.AdjustStock))
	products.Get("/{id}/stock", "products.stock.history", ctx.Handler(productController.StockHistory))

	// Orders
	orders := api.Group("/orders", authed)
	orders.Get("", "orders.list", ctx.Handler(orderController.List))
	orders.Get("/{id}", "orders.show", ctx.Handler(orderController.Get))
	orders.Post("", "orders.create", ctx.Handler(orderController.Create))
	orders.Put("/{id}/status", "orders.status", ctx.Handler(orderController.UpdateStatus))
	orders.Delete("/{id}", "orders.delete", ctx.Handler(orderController.Delete), admin)

	// User administration
	users := api.Group("/users", authed, admin)
	users.Get("", "users.list", ctx.Handler(userController.List))
	users.Get("/{id}", "users.show", ctx.Handler(userController.Get))
	users.Post("", "users.create", ctx.Handler(userController.Create))
	users.Put("/{id}", "users.update", ctx.Handler(userController.Update))
	users.Put("/{id}/reset-password", "users.reset_password", ctx.Handler(userController.ResetPassword))
	users.Delete("/{id}", "users.delete", ctx.Handler(userController.Delete))

	// Dashboard
	dashboard := api.Group("/dashboard", authed)
	dashboard.Get("/stats", "dashboard.stats", ctx.Handler(dashboardController.Stats))
	dashboard.Get("/sales-chart", "dashboard.sales_chart", ctx.Handler(dashboardController.SalesChart))
	dashboard.Get("/top-products", "dashboard.top_products", ctx.Handler(dashboardController.TopProducts))
	dashboard.Get("/status-distribution", "dashboard.status_distribution", ctx.Handler(dashboardController.StatusDistribution))
	dashboard.Get("/category-sales", "dashboard.category_sales", ctx.Handler(dashboardController.CategorySales))
	dashboard.Get("/recent-stock-logs", "dashboard.recent_stock_logs", ctx.Handler(dashboardController.RecentStockLogs))
	dashboard.Get("/recent-orders", "dashboard.recent_orders", ctx.Handler(dashboardController.RecentOrders))

	// Reports
	reports := api.Group("/reports", authed)
	reports.Get("/sales-pdf", "reports.sales_pdf", ctx.Handler(reportController.SalesPDF))
	reports.Get("/products-excel", "reports.products_excel", ctx.Handler(reportController.ProductsExcel))
	reports.Get("/stock-excel", "reports.stock_excel", ctx.Handler(reportController.StockExcel))
	reports.Get("/orders-excel", "reports.orders_excel", ctx.Handler(reportController.OrdersExcel))
	reports.Post("/import-products", "reports.import_products", ctx.Handler(reportController.ImportProducts), admin)

	// Live notifications
	r.Get("/ws", "ws", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, d.Hub)
	})
}
