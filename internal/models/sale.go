package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale represents a closed deal logged against a client
type Sale struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ClientID    uuid.UUID `json:"clientId" db:"client_id"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	Description string    `json:"description" db:"description"`
	Value       float64   `json:"value" db:"value"`
	Date        time.Time `json:"date" db:"date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
