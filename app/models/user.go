package models

import "gorm.io/gorm"

// Role is the authorization level of a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is a staff account. PasswordHash is bcrypt and never serialised.
type User struct {
	gorm.Model
	Name         string `gorm:"size:100;not null"             json:"name"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null"             json:"-"`
	Role         Role   `gorm:"size:20;default:staff"         json:"role"`
	Active       bool   `gorm:"default:true"                  json:"active"`
}
