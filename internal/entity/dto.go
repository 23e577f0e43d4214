package entity

import "time"

// SignupRequest is the registration payload. Profile fields beyond role,
// email and password are role-conditioned and checked by the account service.
type SignupRequest struct {
	Role             string   `json:"role" binding:"required"`
	Email            string   `json:"email" binding:"required,email"`
	Password         string   `json:"password" binding:"required,min=6"`
	Name             string   `json:"name"`
	OrganizationName string   `json:"organizationName"`
	Location         string   `json:"location"`
	Categories       []string `json:"categories"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AccountSummary is a lightweight account description returned to clients.
// It never carries the password hash.
type AccountSummary struct {
	ID               uint      `json:"id"`
	Role             string    `json:"role"`
	Email            string    `json:"email"`
	Name             string    `json:"name,omitempty"`
	OrganizationName string    `json:"organizationName,omitempty"`
	Location         string    `json:"location,omitempty"`
	Categories       []string  `json:"categories,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AuthResponse is returned after successful signup/login.
type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      AccountSummary `json:"user"`
}
