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

func TestCreateUserWithRole(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)

	user, err := svc.Create(context.Background(), services.CreateUserInput{
		Name:     "Boss",
		Email:    "boss@example.com",
		Password: "secret123",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.Active)

	_, err = svc.Create(context.Background(), services.CreateUserInput{
		Name: "Dup", Email: "boss@example.com", Password: "secret123", Role: "staff",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateUserDeactivates(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)

	user, err := svc.Create(context.Background(), services.CreateUserInput{
		Name: "Worker", Email: "worker@example.com", Password: "secret123", Role: "staff",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(context.Background(), user.ID, services.UpdateUserInput{
		Name:   "Worker",
		Email:  "worker@example.com",
		Role:   "staff",
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	auth := services.NewAuthService(db)
	_, _, err = auth.Login(context.Background(), services.LoginInput{
		Email: "worker@example.com", Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestResetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)

	user, err := svc.Create(context.Background(), services.CreateUserInput{
		Name: "Worker", Email: "worker@example.com", Password: "secret123", Role: "staff",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), user.ID, services.ResetPasswordInput{
		NewPassword: "fresh456",
	}))

	auth := services.NewAuthService(db)
	_, _, err = auth.Login(context.Background(), services.LoginInput{
		Email: "worker@example.com", Password: "fresh456",
	})
	require.NoError(t, err)
}

func TestDeleteUserSelfGuard(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)

	admin, err := svc.Create(context.Background(), services.CreateUserInput{
		Name: "Boss", Email: "boss@example.com", Password: "secret123", Role: "admin",
	})
	require.NoError(t, err)
	worker, err := svc.Create(context.Background(), services.CreateUserInput{
		Name: "Worker", Email: "worker@example.com", Password: "secret123", Role: "staff",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), admin.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	require.NoError(t, svc.Delete(context.Background(), admin.ID, worker.ID))
	_, err = svc.Get(context.Background(), worker.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
