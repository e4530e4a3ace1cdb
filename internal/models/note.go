package models

import (
	"time"

	"github.com/google/uuid"
)

// Note represents a free-text annotation attached to a client
type Note struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ClientID  uuid.UUID `json:"clientId" db:"client_id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
