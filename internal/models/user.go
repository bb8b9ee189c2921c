package models

import "time"

// Role represents a user's role in the system
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is a known role
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered user. Identity itself is delegated to the
// external identity provider; Auth0ID stores its subject id.
type User struct {
	ID        string    `json:"id"`
	Auth0ID   string    `json:"auth0Id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest represents a request to provision a user on first login
type CreateUserRequest struct {
	Auth0ID string `json:"auth0Id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Role    Role   `json:"role,omitempty"`
}

// UpdateUserRequest represents a request to update a user profile (partial update)
type UpdateUserRequest struct {
	Email string  `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
	Role  Role    `json:"role,omitempty"`
}

// UserFilter holds optional filters for listing users
type UserFilter struct {
	Role *Role
}
