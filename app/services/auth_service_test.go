package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	user, token, err := svc.Register(context.Background(), services.RegisterInput{
		Name:     "Jane",
		Email:    "Jane@Example.COM",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email)
	// Self-registration never grants admin.
	assert.Equal(t, models.RoleStaff, user.Role)

	got, token, err := svc.Login(context.Background(), services.LoginInput{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, _, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), services.RegisterInput{
		Name: "Other Jane", Email: "JANE@example.com", Password: "secret456",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLoginRejectsBadCredential(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, _, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), services.LoginInput{
		Email: "jane@example.com", Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, _, err = svc.Login(context.Background(), services.LoginInput{
		Email: "nobody@example.com", Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestLoginRejectsDeactivated(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	user, _, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("active", false).Error)

	// Same message as a bad credential, no account probing.
	_, _, err = svc.Login(context.Background(), services.LoginInput{
		Email: "jane@example.com", Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	user, _, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, services.ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "fresh456",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, services.ChangePasswordInput{
		CurrentPassword: "secret123",
		NewPassword:     "fresh456",
	}))

	_, _, err = svc.Login(context.Background(), services.LoginInput{
		Email: "jane@example.com", Password: "fresh456",
	})
	require.NoError(t, err)
}
