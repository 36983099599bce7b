package models_test

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
)

func TestGenerateOrderNumber(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

	number := models.GenerateOrderNumber(now, rnd)
	if len(number) != 12 {
		t.Errorf("expected 12 characters, got %d (%s)", len(number), number)
	}
	if !strings.HasPrefix(number, "SP260829") {
		t.Errorf("expected SP260829 prefix, got %s", number)
	}
	for _, r := range number[8:] {
		if r < '0' || r > '9' {
			t.Errorf("expected numeric suffix, got %s", number)
		}
	}
}

func TestComputeLineTotal(t *testing.T) {
	cases := []struct {
		quantity int
		price    float64
		want     float64
	}{
		{1, 10.00, 10.00},
		{3, 19.90, 59.70},
		{7, 0.10, 0.70},
		{0, 99.99, 0},
	}
	for _, c := range cases {
		if got := models.ComputeLineTotal(c.quantity, c.price); got != c.want {
			t.Errorf("ComputeLineTotal(%d, %v) = %v, want %v", c.quantity, c.price, got, c.want)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.OrderPending, models.OrderPreparing, models.OrderShipped,
		models.OrderCompleted, models.OrderCancelled,
	} {
		if !models.ValidOrderStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if models.ValidOrderStatus("archived") {
		t.Error("expected archived to be invalid")
	}
}
