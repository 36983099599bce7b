package controllers

import (
	"time"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/events"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/repositories"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ctx"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/middleware"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/response"
)

type OrderController struct {
	orders    *services.OrderService
	publisher events.Publisher
}

func NewOrderController(db *gorm.DB, pub events.Publisher) *OrderController {
	return &OrderController{
		orders:    services.NewOrderService(db),
		publisher: pub,
	}
}

func (o *OrderController) List(c *ctx.Context) {
	filter := repositories.OrderFilter{
		Search: c.Query("search"),
		Status: models.OrderStatus(c.Query("status")),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}
	if from, ok := parseDate(c.Query("from")); ok {
		filter.From = &from
	}
	if to, ok := parseDate(c.Query("to")); ok {
		to = endOfDay(to)
		filter.To = &to
	}

	orders, total, err := o.orders.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	filter.Normalize()
	c.Paginated(orders, response.NewPagination(total, filter.Page, filter.Limit))
}

func (o *OrderController) Get(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	order, err := o.orders.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(order)
}

// Create places an order and broadcasts the post-commit notifications.
func (o *OrderController) Create(c *ctx.Context) {
	var in services.CreateOrderInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	actor := middleware.CurrentUser(c.Request.Context())
	order, evts, err := o.orders.Create(c.Request.Context(), actor.ID, in)
	if err != nil {
		c.Error(err)
		return
	}

	events.Dispatch(c.Request.Context(), o.publisher, evts)
	c.Created(order)
}

func (o *OrderController) UpdateStatus(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	actor := middleware.CurrentUser(c.Request.Context())
	order, evts, err := o.orders.UpdateStatus(c.Request.Context(), actor.ID, id, models.OrderStatus(in.Status))
	if err != nil {
		c.Error(err)
		return
	}

	events.Dispatch(c.Request.Context(), o.publisher, evts)
	c.Success(order)
}

func (o *OrderController) Delete(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	actor := middleware.CurrentUser(c.Request.Context())
	if err := o.orders.Delete(c.Request.Context(), actor.ID, id); err != nil {
		c.Error(err)
		return
	}
	c.Success(map[string]string{"message": "order deleted"})
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
