package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles
const (
	RoleAdmin  = 1
	RoleClient = 3
)

// User covers both the admin and dealership clients. A client is a user
// with RoleClient and the ID of the base holding its records.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password,omitempty"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	BaseID       *string   `json:"base_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsClient() bool {
	return u.RoleID == RoleClient && u.BaseID != nil && *u.BaseID != ""
}

type CreateClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	BaseID   string `json:"base_id"`
	Password string `json:"password"`
}

type UpdateClientRequest struct {
	ID     int     `json:"id"`
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	BaseID *string `json:"base_id"`
	Active *bool   `json:"active"`
}

type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	UserBaseID *string
	jwt.RegisteredClaims
}
