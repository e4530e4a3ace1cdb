package models

import (
	"time"

	"github.com/google/uuid"
)

// Reminder represents a dated follow-up task, optionally linked to a client
type Reminder struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Type        string     `json:"type" db:"type"`
	Description *string    `json:"description" db:"description"`
	Date        time.Time  `json:"date" db:"date"`
	Done        bool       `json:"done" db:"done"`
	ClientID    *uuid.UUID `json:"clientId" db:"client_id"`
	UserID      uuid.UUID  `json:"userId" db:"user_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
