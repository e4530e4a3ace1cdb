package dto

// CreateSaleRequest represents the request payload for logging a sale
type CreateSaleRequest struct {
	ClientID    string  `json:"clientId" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Value       float64 `json:"value" validate:"required"`
	Date        string  `json:"date" validate:"required"` // YYYY-MM-DD or RFC3339
}

// UpdateSaleRequest represents a partial sale update
type UpdateSaleRequest struct {
	Description *string  `json:"description,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Date        *string  `json:"date,omitempty"`
}
