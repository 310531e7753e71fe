package models

import (
	"errors"
	"strings"
	"time"
)

// UserRole represents the role of a platform user
type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleStoreOwner UserRole = "store_owner"
	RoleAdmin      UserRole = "admin"
)

// User represents a platform account (customer, store owner or admin)
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest represents the request to create a new account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the token pair returned on login/register
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// Validate validates the RegisterRequest
func (r *RegisterRequest) Validate() error {
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	// Default to customer when no role given
	if r.Role == "" {
		r.Role = string(RoleCustomer)
	}

	role := UserRole(r.Role)
	if role != RoleCustomer && role != RoleStoreOwner {
		return errors.New("invalid role: must be customer or store_owner")
	}

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return nil
}
