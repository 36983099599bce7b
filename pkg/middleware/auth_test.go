package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/auth"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/middleware"
)

func setupAuthDB(t *testing.T) (*gorm.DB, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatal(err)
	}

	user := &models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleStaff, Active: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatal(err)
	}
	return db, user
}

func protected(db *gorm.DB, roles ...string) http.Handler {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.CurrentUser(r.Context()) == nil {
			http.Error(w, "no user in context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	if len(roles) > 0 {
		h = middleware.RequireRole(roles...)(h)
	}
	return middleware.Auth(db)(h)
}

func doRequest(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthAcceptsValidToken(t *testing.T) {
	db, user := setupAuthDB(t)
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		t.Fatal(err)
	}

	if rec := doRequest(protected(db), token); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRejectsMissingOrBadToken(t *testing.T) {
	db, _ := setupAuthDB(t)

	if rec := doRequest(protected(db), ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for missing token, got %d", rec.Code)
	}
	if rec := doRequest(protected(db), "garbage"); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad token, got %d", rec.Code)
	}
}

func TestAuthRejectsDeactivatedUser(t *testing.T) {
	db, user := setupAuthDB(t)
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		t.Fatal(err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("active", false).Error; err != nil {
		t.Fatal(err)
	}

	// A still-valid token must not open the door for a disabled account.
	if rec := doRequest(protected(db), token); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	db, user := setupAuthDB(t)
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		t.Fatal(err)
	}

	if rec := doRequest(protected(db, "admin"), token); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for staff on admin route, got %d", rec.Code)
	}
	if rec := doRequest(protected(db, "admin", "staff"), token); rec.Code != http.StatusOK {
		t.Errorf("expected 200 when role listed, got %d", rec.Code)
	}
}
