package model

import (
	"database/sql"
	"time"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID             int64          `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	PasswordHash   string         `json:"-"` // Never serialized outward
	DisplayName    sql.NullString `json:"-"`
	Bio            sql.NullString `json:"-"`
	FavoriteGenres sql.NullString `json:"-"` // Comma-separated genre preferences
	UploadCount    int64          `json:"uploadCount"`
	LastLogin      sql.NullTime   `json:"-"`
	IsActive       bool           `json:"isActive"`
	Role           string         `json:"role"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
