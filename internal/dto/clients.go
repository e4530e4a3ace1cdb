package dto

// CreateClientRequest represents the request payload for creating a client
type CreateClientRequest struct {
	Name     string  `json:"name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Birthday *string `json:"birthday,omitempty"` // YYYY-MM-DD
	Notes    *string `json:"notes,omitempty"`
}

// UpdateClientRequest represents a partial client update; absent fields keep
// their stored value
type UpdateClientRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Birthday *string `json:"birthday,omitempty"` // YYYY-MM-DD
	Notes    *string `json:"notes,omitempty"`
}
