package dto

// CreateReminderRequest represents the request payload for creating a reminder
type CreateReminderRequest struct {
	Type        string  `json:"type" validate:"required"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date" validate:"required"` // YYYY-MM-DD or RFC3339
	ClientID    *string `json:"clientId,omitempty"`
}

// UpdateReminderRequest represents a partial reminder update
type UpdateReminderRequest struct {
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Done        *bool   `json:"done,omitempty"`
	ClientID    *string `json:"clientId,omitempty"`
}
