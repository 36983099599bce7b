package controllers

import (
	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/services"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/ctx"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/middleware"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/response"
)

// UserController is the admin account-management surface.
type UserController struct {
	users *services.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{users: services.NewUserService(db)}
}

func (u *UserController) List(c *ctx.Context) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	users, total, err := u.users.List(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.Paginated(users, response.NewPagination(total, page, limit))
}

func (u *UserController) Get(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	user, err := u.users.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(user)
}

func (u *UserController) Create(c *ctx.Context) {
	var in services.CreateUserInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	user, err := u.users.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.Created(user)
}

func (u *UserController) Update(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	var in services.UpdateUserInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	user, err := u.users.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.Success(user)
}

func (u *UserController) ResetPassword(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	var in services.ResetPasswordInput
	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		return
	}

	if err := u.users.ResetPassword(c.Request.Context(), id, in); err != nil {
		c.Error(err)
		return
	}
	c.Success(map[string]string{"message": "password reset"})
}

func (u *UserController) Delete(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(err)
		return
	}

	actor := middleware.CurrentUser(c.Request.Context())
	if err := u.users.Delete(c.Request.Context(), actor.ID, id); err != nil {
		c.Error(err)
		return
	}
	c.Success(map[string]string{"message": "user deleted"})
}
