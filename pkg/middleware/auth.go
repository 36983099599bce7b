package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/uyumazulvi/eticaret-stok-yonetim/app/models"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/auth"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/response"
)

type userKeyType struct{}

var userKey userKeyType

// CurrentUser returns the authenticated user stored by Auth, or nil.
func CurrentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// Auth verifies the bearer token, loads the user it names and stores the
// user in the request context. Deactivated accounts are rejected even when
// their token is still valid.
func Auth(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				response.Unauthorized(w)
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			var user models.User
			if err := db.WithContext(r.Context()).First(&user, claims.UserID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					response.Unauthorized(w)
					return
				}
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}

			if !user.Active {
				response.Forbidden(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to users holding one of the given roles.
// Must run after Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			if user == nil {
				response.Unauthorized(w)
				return
			}

			for _, role := range roles {
				if string(user.Role) == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w)
		})
	}
}
