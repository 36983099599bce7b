package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/app/repositories"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/apperr"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/auth"
)

// CreateUserInput is the admin user-creation request body.
type CreateUserInput struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     validate:"required,in=admin,staff"`
}

// UpdateUserInput is the admin user-update request body.
type UpdateUserInput struct {
	Name   string `json:"name"   validate:"required,min=2,max=100"`
	Email  string `json:"email"  validate:"required,email"`
	Role   string `json:"role"   validate:"required,in=admin,staff"`
	Active *bool  `json:"active" validate:"nullable"`
}

// ResetPasswordInput carries the replacement password set by an admin.
type ResetPasswordInput struct {
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// UserService is the admin-only account management surface.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: repositories.NewUserRepository(db)}
}

// Create adds an account with an explicit role.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.users.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Conflict("email %s is already registered", email)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.Role(in.Role),
		Active:       true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// Update changes name, email, role and active flag.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, apperr.Internal(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	taken, err := s.users.EmailTaken(ctx, email, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Conflict("email %s is already registered", email)
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Email = email
	user.Role = models.Role(in.Role)
	if in.Active != nil {
		user.Active = *in.Active
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// ResetPassword replaces a user's credential without the current password.
func (s *UserService) ResetPassword(ctx context.Context, id uint, in ResetPasswordInput) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user %d not found", id)
		}
		return apperr.Internal(err)
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Delete removes an account. Users cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return apperr.Conflict("you cannot delete your own account")
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user %d not found", id)
		}
		return apperr.Internal(err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Get loads one account.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// List returns a page of accounts.
func (s *UserService) List(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return users, total, nil
}
