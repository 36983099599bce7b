package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appctx "github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ctx"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
)

func TestHandlerAndSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Handler(func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":200`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestBindJSONValidates(t *testing.T) {
	type input struct {
		Name string `json:"name" validate:"required,min=2"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Handler(func(c *appctx.Context) {
		var in input
		err := c.BindJSON(&in)
		if err == nil {
			t.Error("expected validation error")
		}
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("expected validation kind, got %s", apperr.KindOf(err))
		}
		c.Error(err)
	})(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestBindJSONMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Handler(func(c *appctx.Context) {
		var in struct{}
		if err := c.BindJSON(&in); err == nil {
			t.Error("expected error for malformed body")
		}
		c.Success(nil)
	})(rec, req)
}

func TestQueryHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=abc", nil)

	appctx.Handler(func(c *appctx.Context) {
		if got := c.QueryInt("page", 1); got != 3 {
			t.Errorf("expected 3, got %d", got)
		}
		if got := c.QueryInt("limit", 20); got != 20 {
			t.Errorf("expected fallback 20, got %d", got)
		}
		if got := c.QueryDefault("sort_by", "name"); got != "name" {
			t.Errorf("expected fallback name, got %s", got)
		}
		c.Success(nil)
	})(rec, req)
}

func TestErrorStatusMapping(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	appctx.Handler(func(c *appctx.Context) {
		c.Error(apperr.NotFound("product %d not found", 9))
	})(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "product 9 not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
