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

// RegisterInput is the self-registration request body.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput is the credential pair for authentication.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput lets a user change their own name and email.
type UpdateProfileInput struct {
	Name  string `json:"name"  validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordInput requires the current password before setting a new one.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72"`
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db)}
}

// Register creates a staff account. The first account could be promoted by
// an admin later; self-registration never grants admin.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.users.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	if taken {
		return nil, "", apperr.Conflict("email %s is already registered", email)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	user := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleStaff,
		Active:       true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, "", apperr.Internal(err)
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return &user, token, nil
}

// Login checks the credential and issues a token. Deactivated accounts are
// rejected with the same message as a bad credential.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Unauthorized("invalid email or password")
		}
		return nil, "", apperr.Internal(err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) || !user.Active {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return user, token, nil
}

// UpdateProfile changes the caller's own name and email.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", userID)
		}
		return nil, apperr.Internal(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	taken, err := s.users.EmailTaken(ctx, email, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Conflict("email %s is already registered", email)
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Email = email
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// ChangePassword verifies the current password, then stores a fresh hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, in ChangePasswordInput) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user %d not found", userID)
		}
		return apperr.Internal(err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.CurrentPassword) {
		return apperr.Unauthorized("current password is incorrect")
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
