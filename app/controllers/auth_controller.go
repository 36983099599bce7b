// Package controllers translates HTTP requests into service calls and
// service results into the JSON envelope.
package controllers

import (
	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ctx"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/middleware"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{auth: services.NewAuthService(db)}
}

func (a *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	user, token, err := a.auth.Register(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.Created(map[string]any{"user": user, "token": token})
}

func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	user, token, err := a.auth.Login(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(map[string]any{"user": user, "token": token})
}

// Me returns the authenticated account loaded by the auth middleware.
func (a *AuthController) Me(c *ctx.Context) {
	c.Success(middleware.CurrentUser(c.Request.Context()))
}

func (a *AuthController) UpdateProfile(c *ctx.Context) {
	var in services.UpdateProfileInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	actor := middleware.CurrentUser(c.Request.Context())
	user, err := a.auth.UpdateProfile(c.Request.Context(), actor.ID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(user)
}

func (a *AuthController) ChangePassword(c *ctx.Context) {
	var in services.ChangePasswordInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	actor := middleware.CurrentUser(c.Request.Context())
	if err := a.auth.ChangePassword(c.Request.Context(), actor.ID, in); err != nil {
		c.Error(err)
		return
	}
	c.Success(map[string]string{"message": "password updated"})
}
