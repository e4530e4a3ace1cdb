package models

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a customer record owned by a single user
type Client struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Phone     *string    `json:"phone" db:"phone"`
	Email     *string    `json:"email" db:"email"`
	Birthday  *time.Time `json:"birthday" db:"birthday"`
	Notes     *string    `json:"notes" db:"notes"`
	UserID    uuid.UUID  `json:"userId" db:"user_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
