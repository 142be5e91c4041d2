package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser представляет администратора магазина.
type AdminUser struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// LoginRequest - запрос на аутентификацию администратора.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
