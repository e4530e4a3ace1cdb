package dto

// ErrorResponse is the flat error shape used by every failing endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is returned by operations with no entity payload
type MessageResponse struct {
	Message string `json:"message"`
}

// ListResponse is the pagination envelope shared by every collection endpoint
type ListResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	LastPage int `json:"lastPage"`
}
