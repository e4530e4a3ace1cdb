package dto

// CreateNoteRequest represents the request payload for creating a note
type CreateNoteRequest struct {
	ClientID string `json:"clientId" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// UpdateNoteRequest represents a partial note update
type UpdateNoteRequest struct {
	Content *string `json:"content,omitempty"`
}
