package domain

import "time"

// Role classifies what operations an identity may perform. It is a closed
// set: ParseRole is the only way a raw string becomes a Role, so
// unauthorized values are unrepresentable inside the core.
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// ParseRole converts a raw string into a Role. The second return value is
// false when the string is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStandard, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
