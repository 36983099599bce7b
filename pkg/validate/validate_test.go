package validate_test

import (
	"testing"

	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/validate"
)

type createProductInput struct {
	Name     string  `json:"name"     validate:"required,min=2,max=255"`
	Category string  `json:"category" validate:"nullable,max=100"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Stock    int     `json:"stock"    validate:"gte=0"`
	Status   string  `json:"status"   validate:"nullable,in=active,inactive,out_of_stock"`
	Email    string  `json:"email"    validate:"nullable,email"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(createProductInput{
		Name:   "Desk Lamp",
		Price:  27.75,
		Stock:  40,
		Status: "active",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(createProductInput{})
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(createProductInput{Name: "Lamp"})
	if _, ok := errs["status"]; ok {
		t.Error("expected empty nullable status to pass")
	}
	if _, ok := errs["email"]; ok {
		t.Error("expected empty nullable email to pass")
	}
}

func TestInRuleWithTrailingRules(t *testing.T) {
	// The in= list must not swallow rules that follow it.
	type in struct {
		Reason string `json:"reason" validate:"required,in=inbound,outbound,correction,return,max=20"`
	}
	if errs := validate.Struct(in{Reason: "correction"}); validate.HasErrors(errs) {
		t.Errorf("expected correction to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Reason: "order-consumption"}); !validate.HasErrors(errs) {
		t.Error("expected order-consumption to fail the in rule")
	}
	if errs := validate.Struct(in{Reason: "a-reason-far-longer-than-twenty-chars"}); !validate.HasErrors(errs) {
		t.Error("expected max=20 after in= to still apply")
	}
}

func TestGteAllowsZero(t *testing.T) {
	type in struct {
		Amount int `json:"amount" validate:"gte=0"`
	}
	if errs := validate.Struct(in{Amount: 0}); validate.HasErrors(errs) {
		t.Errorf("expected zero to satisfy gte=0, got: %v", errs)
	}
	if errs := validate.Struct(in{Amount: -1}); !validate.HasErrors(errs) {
		t.Error("expected -1 to fail gte=0")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); !validate.HasErrors(errs) {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestStringBounds(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	if errs := validate.Struct(in{Name: "a"}); !validate.HasErrors(errs) {
		t.Error("expected one-char name to fail min=2")
	}
	if errs := validate.Struct(in{Name: "abcdef"}); !validate.HasErrors(errs) {
		t.Error("expected six-char name to fail max=5")
	}
	if errs := validate.Struct(in{Name: "abc"}); validate.HasErrors(errs) {
		t.Errorf("expected three-char name to pass, got: %v", errs)
	}
}
